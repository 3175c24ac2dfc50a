package config

import (
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// Config is the root configuration for the question answering service.
type Config struct {
	App      AppConfig      `mapstructure:"app" yaml:"app"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j" yaml:"neo4j"`
	LLM      llm.LLMConfig  `mapstructure:"llm" yaml:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`
	Jobs     JobsConfig     `mapstructure:"jobs" yaml:"jobs"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}

// AppConfig contains service identity settings reported by the health endpoint.
type AppConfig struct {
	Name        string `mapstructure:"name" yaml:"name" validate:"required"`
	Environment string `mapstructure:"environment" yaml:"environment" validate:"oneof=development staging production test"`
	Debug       bool   `mapstructure:"debug" yaml:"debug"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=1s"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=1s"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1s"`
}

// Neo4jConfig contains Neo4j connection settings.
type Neo4jConfig struct {
	URI               string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username          string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password          string        `mapstructure:"password" yaml:"password" validate:"required"`
	Database          string        `mapstructure:"database" yaml:"database"`
	MaxConnections    int           `mapstructure:"max_connections" yaml:"max_connections" validate:"min=1,max=500"`
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	ConnectRetries    int           `mapstructure:"connect_retries" yaml:"connect_retries" validate:"min=1,max=20"`
}

// GraphConfig converts the connection settings for the graph client.
// The read transaction timeout follows the pipeline's per-attempt execution timeout.
func (c *Config) GraphConfig() graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                     c.Neo4j.URI,
		Username:                c.Neo4j.Username,
		Password:                c.Neo4j.Password,
		Database:                c.Neo4j.Database,
		MaxConnectionPoolSize:   c.Neo4j.MaxConnections,
		ConnectionTimeout:       c.Neo4j.ConnectionTimeout,
		MaxTransactionRetryTime: c.Pipeline.ExecutionTimeout,
		QueryTimeout:            c.Pipeline.ExecutionTimeout,
		ConnectRetries:          c.Neo4j.ConnectRetries,
	}
}

// PipelineConfig bounds the generate, execute and synthesize loop.
type PipelineConfig struct {
	MaxAttempts       int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=1,max=10"`
	SchemaTimeout     time.Duration `mapstructure:"schema_timeout" yaml:"schema_timeout" validate:"min=1s"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout" yaml:"generation_timeout" validate:"min=1s"`
	ExecutionTimeout  time.Duration `mapstructure:"execution_timeout" yaml:"execution_timeout" validate:"min=100ms"`
	SynthesisTimeout  time.Duration `mapstructure:"synthesis_timeout" yaml:"synthesis_timeout" validate:"min=1s"`
	MaxResultRows     int           `mapstructure:"max_result_rows" yaml:"max_result_rows" validate:"min=1,max=1000"`
	Temperature       float64       `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
}

// Deadline is the overall time budget for one question: schema
// introspection, every attempt, then synthesis.
func (p PipelineConfig) Deadline() time.Duration {
	return p.SchemaTimeout + time.Duration(p.MaxAttempts)*(p.GenerationTimeout+p.ExecutionTimeout) + p.SynthesisTimeout
}

// JobsConfig contains settings for asynchronous query jobs.
type JobsConfig struct {
	Backend   string        `mapstructure:"backend" yaml:"backend" validate:"oneof=memory redis"`
	RedisURL  string        `mapstructure:"redis_url" yaml:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix" yaml:"key_prefix"`
	Workers   int           `mapstructure:"workers" yaml:"workers" validate:"min=1,max=64"`
	QueueSize int           `mapstructure:"queue_size" yaml:"queue_size" validate:"min=1"`
	ResultTTL time.Duration `mapstructure:"result_ttl" yaml:"result_ttl" validate:"min=1s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure    bool    `mapstructure:"insecure" yaml:"insecure"`
	ServiceName string  `mapstructure:"service_name" yaml:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate" yaml:"sample_rate" validate:"min=0,max=1"`
}

// MetricsConfig contains metrics export configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}
