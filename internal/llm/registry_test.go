package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	registry := NewLLMRegistry()

	_, err := registry.Resolve("")
	assert.True(t, types.HasCode(err, ErrProviderNotFound))

	require.NoError(t, registry.RegisterProvider(&stubProvider{name: "openai"}))
	require.NoError(t, registry.RegisterProvider(&stubProvider{name: "Groq"}))

	err = registry.RegisterProvider(&stubProvider{name: "openai"})
	assert.True(t, types.HasCode(err, ErrProviderAlreadyExists))

	assert.True(t, types.HasCode(registry.RegisterProvider(nil), ErrProviderInvalidInput))
	assert.True(t, types.HasCode(registry.RegisterProvider(&stubProvider{}), ErrProviderInvalidInput))

	assert.Equal(t, []string{"groq", "openai"}, registry.ListProviders())
	assert.Equal(t, "openai", registry.DefaultName())

	p, err := registry.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	p, err = registry.Resolve(" GROQ ")
	require.NoError(t, err)
	assert.Equal(t, "Groq", p.Name())

	_, err = registry.Resolve("anthropic")
	assert.True(t, types.HasCode(err, ErrProviderNotFound))

	require.NoError(t, registry.SetDefault("groq"))
	p, err = registry.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "Groq", p.Name())

	assert.Error(t, registry.SetDefault("missing"))
}

func TestRegistry_Health(t *testing.T) {
	ctx := context.Background()
	registry := NewLLMRegistry()
	assert.True(t, registry.Health(ctx).IsUnhealthy())

	require.NoError(t, registry.RegisterProvider(&stubProvider{name: "a", health: types.Healthy("ok")}))
	assert.True(t, registry.Health(ctx).IsHealthy())

	require.NoError(t, registry.RegisterProvider(&stubProvider{name: "b", health: types.Unhealthy("down")}))
	status := registry.Health(ctx)
	assert.True(t, status.IsDegraded())
	assert.Contains(t, status.Message, "b")
}
