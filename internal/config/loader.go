package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// ConfigLoader handles loading configuration from files and the environment.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
	getenv    func(string) string
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
		getenv:    os.Getenv,
	}
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"app.environment":       "ENVIRONMENT",
	"server.host":           "API_HOST",
	"server.port":           "API_PORT",
	"server.cors_origins":   "CORS_ORIGINS",
	"neo4j.uri":             "NEO4J_URI",
	"neo4j.username":        "NEO4J_USERNAME",
	"neo4j.password":        "NEO4J_PASSWORD",
	"neo4j.database":        "NEO4J_DATABASE",
	"llm.default_provider":  "LLM_PROVIDER",
	"pipeline.max_attempts": "QA_MAX_ATTEMPTS",
	"jobs.redis_url":        "REDIS_URL",
	"logging.level":         "LOG_LEVEL",
	"logging.format":        "LOG_FORMAT",
	"tracing.endpoint":      "OTEL_EXPORTER_OTLP_ENDPOINT",
}

// Load loads configuration from the specified file path, layered over
// DefaultConfig and under environment overrides.
// Returns an error if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	return l.build(v)
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, defaults plus environment overrides are used.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return l.Load(path)
		}
	}

	return l.build(viper.New())
}

func (l *viperConfigLoader) build(v *viper.Viper) (*Config, error) {
	for key, env := range envBindings {
		if val := l.getenv(env); val != "" {
			v.Set(key, val)
		}
	}

	cfg := DefaultConfig()
	if v.IsSet("llm.providers") {
		// providers listed in the file replace the built-in entry instead of merging with it
		cfg.LLM.Providers = nil
	}
	raw := interpolateEnvVars(v.AllSettings(), l.getenv)
	if err := decode(raw, cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to decode config", err)
	}

	applyProviderEnv(cfg, l.getenv)

	if cfg.Jobs.RedisURL != "" && l.getenv("REDIS_URL") != "" {
		cfg.Jobs.Backend = "redis"
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", err)
	}

	return cfg, nil
}

// decode maps the interpolated settings onto cfg, keeping defaults for absent keys.
func decode(raw any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// applyProviderEnv fills provider credentials from the environment variables the
// service has always accepted: OPENAI_API_KEY, OPENAI_MODEL, GROQ_API_KEY, GROQ_MODEL, and so on.
// A provider type named by LLM_PROVIDER but missing from the file is added.
func applyProviderEnv(cfg *Config, getenv func(string) string) {
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]llm.ProviderConfig)
	}
	cfg.LLM.DefaultProvider = llm.NormalizeProviderName(cfg.LLM.DefaultProvider)

	envPrefixes := map[llm.ProviderType]string{
		llm.ProviderOpenAI:    "OPENAI",
		llm.ProviderGroq:      "GROQ",
		llm.ProviderAnthropic: "ANTHROPIC",
		llm.ProviderGoogle:    "GOOGLE",
		llm.ProviderOllama:    "OLLAMA",
	}

	if _, ok := cfg.LLM.Providers[cfg.LLM.DefaultProvider]; !ok {
		if _, known := envPrefixes[llm.ProviderType(cfg.LLM.DefaultProvider)]; known || cfg.LLM.DefaultProvider == string(llm.ProviderMock) {
			cfg.LLM.Providers[cfg.LLM.DefaultProvider] = llm.ProviderConfig{Type: llm.ProviderType(cfg.LLM.DefaultProvider)}
		}
	}

	// An API key in the environment makes that provider selectable per request.
	for providerType, prefix := range envPrefixes {
		if getenv(prefix+"_API_KEY") == "" || hasProviderType(cfg.LLM.Providers, providerType) {
			continue
		}
		cfg.LLM.Providers[string(providerType)] = llm.ProviderConfig{Type: providerType}
	}

	for name, pc := range cfg.LLM.Providers {
		prefix, ok := envPrefixes[pc.Type]
		if !ok {
			continue
		}
		if pc.APIKey == "" {
			pc.APIKey = getenv(prefix + "_API_KEY")
		}
		if model := getenv(prefix + "_MODEL"); model != "" && pc.Model == "" {
			pc.Model = model
		}
		if pc.Type == llm.ProviderOllama && pc.BaseURL == "" {
			pc.BaseURL = getenv("OLLAMA_BASE_URL")
		}
		cfg.LLM.Providers[name] = pc
	}

	// Hosted providers without credentials cannot be built; only the default is kept
	// so that the missing key is reported when a command needs it.
	for name, pc := range cfg.LLM.Providers {
		if name != cfg.LLM.DefaultProvider && pc.RequiresAPIKey() && pc.APIKey == "" {
			delete(cfg.LLM.Providers, name)
		}
	}
}

func hasProviderType(providers map[string]llm.ProviderConfig, providerType llm.ProviderType) bool {
	for _, pc := range providers {
		if pc.Type == providerType {
			return true
		}
	}
	return false
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateEnvVars recursively interpolates environment variables in the config map.
// Supports ${VAR_NAME} syntax.
func interpolateEnvVars(data any, getenv func(string) string) any {
	switch v := data.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			result[key] = interpolateEnvVars(value, getenv)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, value := range v {
			result[i] = interpolateEnvVars(value, getenv)
		}
		return result
	case string:
		return interpolateString(v, getenv)
	default:
		return v
	}
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables are left as written so validation can point at them.
func interpolateString(s string, getenv func(string) string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}
