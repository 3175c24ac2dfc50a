package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// LLMRegistry manages the configured providers and which one serves requests by default.
type LLMRegistry interface {
	// RegisterProvider registers an LLM provider with the registry
	RegisterProvider(provider LLMProvider) error

	// GetProvider retrieves a provider by name
	GetProvider(name string) (LLMProvider, error)

	// Resolve returns the named provider, or the default provider when name is empty
	Resolve(name string) (LLMProvider, error)

	// ListProviders returns the names of all registered providers, sorted
	ListProviders() []string

	// Health returns the aggregated health of all providers
	Health(ctx context.Context) types.HealthStatus
}

// DefaultLLMRegistry implements LLMRegistry with thread-safe operations.
type DefaultLLMRegistry struct {
	mu          sync.RWMutex
	providers   map[string]LLMProvider
	defaultName string
}

// NewLLMRegistry creates a new DefaultLLMRegistry instance
func NewLLMRegistry() *DefaultLLMRegistry {
	return &DefaultLLMRegistry{
		providers: make(map[string]LLMProvider),
	}
}

// RegisterProvider registers an LLM provider with the registry.
// The first registered provider becomes the default until SetDefault is called.
func (r *DefaultLLMRegistry) RegisterProvider(provider LLMProvider) error {
	if provider == nil {
		return types.NewError(ErrProviderInvalidInput, "provider cannot be nil")
	}

	name := NormalizeProviderName(provider.Name())
	if name == "" {
		return types.NewError(ErrProviderInvalidInput, "provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return types.NewError(ErrProviderAlreadyExists, fmt.Sprintf("provider %q already registered", name))
	}

	r.providers[name] = provider
	if r.defaultName == "" {
		r.defaultName = name
	}

	return nil
}

// SetDefault selects the provider used when a request does not name one.
func (r *DefaultLLMRegistry) SetDefault(name string) error {
	name = NormalizeProviderName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return NewProviderNotFoundError(name)
	}
	r.defaultName = name
	return nil
}

// DefaultName returns the name of the default provider.
func (r *DefaultLLMRegistry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// GetProvider retrieves a provider by name.
func (r *DefaultLLMRegistry) GetProvider(name string) (LLMProvider, error) {
	name = NormalizeProviderName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, NewProviderNotFoundError(name)
	}

	return provider, nil
}

// Resolve returns the named provider, or the default one when name is empty.
func (r *DefaultLLMRegistry) Resolve(name string) (LLMProvider, error) {
	if NormalizeProviderName(name) == "" {
		r.mu.RLock()
		name = r.defaultName
		r.mu.RUnlock()
		if name == "" {
			return nil, types.NewError(ErrProviderNotFound, "no providers registered")
		}
	}
	return r.GetProvider(name)
}

// ListProviders returns the names of all registered providers in sorted order.
func (r *DefaultLLMRegistry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Health returns the overall health status of the registry.
// Healthy if all providers are healthy, degraded if some are not,
// unhealthy if none are or no providers are registered.
func (r *DefaultLLMRegistry) Health(ctx context.Context) types.HealthStatus {
	r.mu.RLock()
	providers := make(map[string]LLMProvider, len(r.providers))
	for name, p := range r.providers {
		providers[name] = p
	}
	r.mu.RUnlock()

	if len(providers) == 0 {
		return types.Unhealthy("no providers registered")
	}

	statuses := make(map[string]types.HealthStatus, len(providers))
	for name, provider := range providers {
		statuses[name] = provider.Health(ctx)
	}

	return types.Aggregate(statuses)
}
