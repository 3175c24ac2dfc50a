package config

import (
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// DefaultConfig returns a Config with sensible default values.
// LLM credentials are not part of the defaults; they come from the file or environment.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "neo4jqa",
			Environment: "development",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    3 * time.Minute,
			ShutdownTimeout: 15 * time.Second,
		},
		Neo4j: Neo4jConfig{
			URI:               "bolt://localhost:7687",
			Username:          "neo4j",
			Password:          "password123",
			MaxConnections:    50,
			ConnectionTimeout: 30 * time.Second,
			ConnectRetries:    5,
		},
		LLM: llm.LLMConfig{
			DefaultProvider: "openai",
			Providers: map[string]llm.ProviderConfig{
				"openai": {Type: llm.ProviderOpenAI, Model: "gpt-3.5-turbo"},
			},
		},
		Pipeline: PipelineConfig{
			MaxAttempts:       3,
			SchemaTimeout:     10 * time.Second,
			GenerationTimeout: 30 * time.Second,
			ExecutionTimeout:  10 * time.Second,
			SynthesisTimeout:  30 * time.Second,
			MaxResultRows:     50,
			Temperature:       0,
		},
		Jobs: JobsConfig{
			Backend:   "memory",
			KeyPrefix: "neo4jqa:task:",
			Workers:   4,
			QueueSize: 100,
			ResultTTL: time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "neo4jqa",
			SampleRate:  1.0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
