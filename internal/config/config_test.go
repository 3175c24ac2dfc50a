package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func testLoader(vars map[string]string) *viperConfigLoader {
	return &viperConfigLoader{validator: NewValidator(), getenv: envFrom(vars)}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "neo4jqa", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, 3, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, time.Hour, cfg.Jobs.ResultTTL)
	assert.Equal(t, "memory", cfg.Jobs.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Tracing.Enabled)

	assert.NoError(t, NewValidator().Validate(cfg))
}

func TestPipelineConfig_Deadline(t *testing.T) {
	p := PipelineConfig{
		MaxAttempts:       3,
		SchemaTimeout:     10 * time.Second,
		GenerationTimeout: 30 * time.Second,
		ExecutionTimeout:  10 * time.Second,
		SynthesisTimeout:  20 * time.Second,
	}
	assert.Equal(t, 150*time.Second, p.Deadline())
}

func TestGraphConfig(t *testing.T) {
	cfg := DefaultConfig()
	gc := cfg.GraphConfig()

	assert.Equal(t, cfg.Neo4j.URI, gc.URI)
	assert.Equal(t, cfg.Neo4j.MaxConnections, gc.MaxConnectionPoolSize)
	assert.Equal(t, cfg.Pipeline.ExecutionTimeout, gc.QueryTimeout)
	assert.NoError(t, gc.Validate())
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  environment: production
server:
  port: 9000
  cors_origins: ["http://localhost:3000"]
neo4j:
  uri: neo4j+s://graph.example.com:7687
  username: reader
  password: ${TEST_NEO4J_PASSWORD}
llm:
  default_provider: groq
  providers:
    groq:
      type: groq
      api_key: ${TEST_GROQ_KEY}
pipeline:
  max_attempts: 5
  execution_timeout: 4s
logging:
  level: debug
  format: text
`)

	cfg, err := testLoader(map[string]string{
		"TEST_NEO4J_PASSWORD": "s3cret",
		"TEST_GROQ_KEY":       "gsk-123",
	}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.Neo4j.Password)
	assert.Equal(t, "reader", cfg.Neo4j.Username)
	assert.Equal(t, 5, cfg.Pipeline.MaxAttempts)
	assert.Equal(t, 4*time.Second, cfg.Pipeline.ExecutionTimeout)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.GenerationTimeout, "unset keys keep defaults")
	assert.Equal(t, "groq", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gsk-123", cfg.LLM.Providers["groq"].APIKey)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := testLoader(map[string]string{
		"NEO4J_URI":      "bolt://db:7687",
		"NEO4J_PASSWORD": "pw",
		"LLM_PROVIDER":   "groq",
		"GROQ_API_KEY":   "gsk-env",
		"GROQ_MODEL":     "llama3-70b-8192",
		"OPENAI_API_KEY": "sk-env",
		"API_PORT":       "8080",
		"LOG_LEVEL":      "warn",
		"REDIS_URL":      "redis://cache:6379/0",
		"CORS_ORIGINS":   "http://a.test,http://b.test",
	}).LoadWithDefaults("")
	require.NoError(t, err)

	assert.Equal(t, "bolt://db:7687", cfg.Neo4j.URI)
	assert.Equal(t, "pw", cfg.Neo4j.Password)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)

	assert.Equal(t, "groq", cfg.LLM.DefaultProvider)
	groq := cfg.LLM.Providers["groq"]
	assert.Equal(t, llm.ProviderGroq, groq.Type)
	assert.Equal(t, "gsk-env", groq.APIKey)
	assert.Equal(t, "llama3-70b-8192", groq.Model)
	assert.Equal(t, "sk-env", cfg.LLM.Providers["openai"].APIKey)

	assert.Equal(t, "redis", cfg.Jobs.Backend)
	assert.Equal(t, "redis://cache:6379/0", cfg.Jobs.RedisURL)
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	cfg, err := testLoader(nil).LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Neo4j.URI, cfg.Neo4j.URI)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := testLoader(nil).Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.True(t, types.HasCode(err, types.CONFIG_LOAD_FAILED))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [unterminated")
		_, err := testLoader(nil).Load(path)
		assert.True(t, types.HasCode(err, types.CONFIG_LOAD_FAILED))
	})

	t.Run("validation failure", func(t *testing.T) {
		path := writeConfig(t, "pipeline:\n  max_attempts: 0\nlogging:\n  level: loud\n")
		_, err := testLoader(nil).Load(path)
		require.Error(t, err)
		assert.True(t, types.HasCode(err, types.CONFIG_VALIDATION_FAILED))
		assert.Contains(t, err.Error(), "pipeline.max_attempts must be at least 1")
		assert.Contains(t, err.Error(), "logging.level must be one of")
	})
}

func TestValidator_CrossFieldRules(t *testing.T) {
	v := NewValidator()

	t.Run("redis backend needs url", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Jobs.Backend = "redis"
		err := v.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jobs.redis_url")
	})

	t.Run("default provider must exist", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.DefaultProvider = "anthropic"
		err := v.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "anthropic")
	})

	t.Run("tracing needs endpoint", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tracing.Enabled = true
		assert.Error(t, v.Validate(cfg))
	})

	t.Run("unknown provider type", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.Providers["openai"] = llm.ProviderConfig{Type: "bard"}
		err := v.Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm.providers[openai].type must be one of")
	})

	t.Run("nil config", func(t *testing.T) {
		assert.Error(t, v.Validate(nil))
	})
}

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"MaxAttempts":     "max_attempts",
		"LLM":             "llm",
		"CORSOrigins":     "cors_origins",
		"URI":             "uri",
		"Neo4j":           "neo4j",
		"DefaultProvider": "default_provider",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelToSnake(in), in)
	}
}

func TestInterpolateString(t *testing.T) {
	getenv := envFrom(map[string]string{"HOST": "db"})
	assert.Equal(t, "bolt://db:7687", interpolateString("bolt://${HOST}:7687", getenv))
	assert.Equal(t, "${MISSING}", interpolateString("${MISSING}", getenv))
}
