package graph

import (
	"context"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// GraphClient provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type GraphClient interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	Close(ctx context.Context) error

	// Health returns the current health status of the graph database connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a Cypher query in a read-only transaction.
	// Failures are returned as *types.AppError carrying one of the ErrCodeGraph* codes,
	// so callers can tell an unreachable store from a rejected statement.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// CreateNode creates a new node with the specified labels and properties.
	// Returns the element ID of the created node.
	CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error)

	// CreateRelationship creates a relationship between two nodes identified by element ID.
	CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error

	// Clear removes every node and relationship. Returns the number of deleted nodes.
	Clear(ctx context.Context) (int, error)
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value.
	// Driver-specific values (nodes, relationships, paths, temporal types)
	// are normalized to plain maps, slices and strings.
	Records []map[string]any

	// Columns contains the names of the columns in the result set, in RETURN order.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	ExecutionTime        time.Duration
	NodesCreated         int
	NodesDeleted         int
	RelationshipsCreated int
	RelationshipsDeleted int
	PropertiesSet        int
}

// GraphClientConfig contains configuration options for graph database clients.
type GraphClientConfig struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string

	Username string
	Password string

	// Database name to connect to. Empty string uses the default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a connection from the pool.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime is the maximum time to retry transient transaction failures.
	MaxTransactionRetryTime time.Duration

	// QueryTimeout is sent to the server as the transaction timeout for reads.
	// Zero leaves the server default in place.
	QueryTimeout time.Duration

	// ConnectRetries is the number of connection attempts made by Connect.
	ConnectRetries int
}

// DefaultConfig returns a GraphClientConfig with sensible defaults.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password123",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 5 * time.Second,
		QueryTimeout:            10 * time.Second,
		ConnectRetries:          5,
	}
}

// Validate checks if the configuration is valid.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	if c.QueryTimeout < 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "QueryTimeout cannot be negative")
	}
	return nil
}
