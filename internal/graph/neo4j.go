package graph

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Neo4jClient implements GraphClient for Neo4j graph databases.
// It provides connection pooling, automatic retries, and health monitoring.
// A client whose initial Connect failed dials again on the next Query or
// Health call, so a store that comes up later is picked up without a restart.
type Neo4jClient struct {
	config GraphClientConfig

	mu     sync.Mutex
	driver neo4j.DriverWithContext
	closed bool

	// newDriver builds an unverified driver; replaced in tests.
	newDriver func() (neo4j.DriverWithContext, error)
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// Connect dials eagerly with retries; otherwise the first Query dials once.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Neo4jClient{config: config}
	c.newDriver = c.buildDriver
	return c, nil
}

func (c *Neo4jClient) buildDriver() (neo4j.DriverWithContext, error) {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	return neo4j.NewDriverWithContext(c.config.URI, auth, func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
		// Encryption is controlled by the URI scheme (bolt:// vs bolt+s://)
	})
}

// dialLocked builds a driver and verifies it against the server. c.mu must be held.
func (c *Neo4jClient) dialLocked(ctx context.Context) error {
	driver, err := c.newDriver()
	if err != nil {
		return err
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return err
	}
	c.driver = driver
	return nil
}

// acquire returns the live driver, dialing once if there is none yet.
func (c *Neo4jClient) acquire(ctx context.Context) (neo4j.DriverWithContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, types.NewError(ErrCodeGraphConnectionClosed, "client closed")
	}
	if c.driver != nil {
		return c.driver, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()
	if err := c.dialLocked(dialCtx); err != nil {
		if ctx.Err() != nil {
			return nil, types.WrapError(ErrCodeGraphConnectionFailed, "connection attempt cancelled", ctx.Err())
		}
		return nil, types.WrapError(ErrCodeGraphConnectionFailed,
			fmt.Sprintf("failed to connect to %s", c.config.URI), err)
	}
	return c.driver, nil
}

// Connect establishes a connection to the Neo4j database.
// Uses exponential backoff for connection retries.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver != nil {
		return nil
	}
	c.closed = false

	maxRetries := c.config.ConnectRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := c.dialLocked(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
		if attempt == maxRetries-1 {
			break
		}

		// baseDelay * 2^attempt, capped by the acquisition timeout
		delay := baseDelay * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.config.ConnectionTimeout {
			delay = c.config.ConnectionTimeout
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
	}

	return types.WrapError(ErrCodeGraphConnectionFailed,
		fmt.Sprintf("failed to connect to %s after %d attempts", c.config.URI, maxRetries), lastErr)
}

// Close releases all resources and closes the database connection.
// A closed client does not reconnect until Connect is called again.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.driver == nil {
		return nil
	}

	driver := c.driver
	c.driver = nil
	if err := driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed,
			"failed to close driver", err)
	}
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	driver, err := c.acquire(healthCtx)
	if err != nil {
		return types.Unhealthy(err.Error())
	}

	if err := driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// Query executes a Cypher query in a read-access session.
// The server rejects writes in such a session, and QueryTimeout is sent as the transaction timeout.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	driver, err := c.acquire(ctx)
	if err != nil {
		return QueryResult{}, err
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	var txConfig []func(*neo4j.TransactionConfig)
	if c.config.QueryTimeout > 0 {
		txConfig = append(txConfig, neo4j.WithTxTimeout(c.config.QueryTimeout))
	}

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		keys, err := neoResult.Keys()
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(keys, records, summary), nil
	}, txConfig...)

	if err != nil {
		return QueryResult{}, classifyError(ctx, err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// CreateNode creates a new node with the specified labels and properties.
func (c *Neo4jClient) CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error) {
	if len(labels) == 0 {
		return "", types.NewError(ErrCodeGraphNodeCreateFailed, "at least one label is required")
	}
	driver, err := c.acquire(ctx)
	if err != nil {
		return "", err
	}

	var labelStr strings.Builder
	for _, label := range labels {
		labelStr.WriteString(":")
		labelStr.WriteString(QuoteIdentifier(label))
	}

	cypher := fmt.Sprintf("CREATE (n%s) SET n = $props RETURN elementId(n) AS id", labelStr.String())

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, map[string]any{"props": props})
		if err != nil {
			return nil, err
		}

		record, err := neoResult.Single(ctx)
		if err != nil {
			return nil, err
		}

		id, ok := record.Get("id")
		if !ok {
			return nil, fmt.Errorf("id not found in result")
		}

		return id.(string), nil
	})

	if err != nil {
		return "", types.WrapError(ErrCodeGraphNodeCreateFailed,
			"failed to create node", err)
	}

	return result.(string), nil
}

// CreateRelationship creates a relationship between two nodes.
func (c *Neo4jClient) CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error {
	driver, err := c.acquire(ctx)
	if err != nil {
		return err
	}

	cypher := fmt.Sprintf(`
		MATCH (from), (to)
		WHERE elementId(from) = $fromId AND elementId(to) = $toId
		CREATE (from)-[r:%s]->(to)
		SET r = $props
		RETURN r
	`, QuoteIdentifier(relType))

	if props == nil {
		props = map[string]any{}
	}
	params := map[string]any{
		"fromId": fromID,
		"toId":   toID,
		"props":  props,
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		// Single fails when either endpoint is missing
		_, err = neoResult.Single(ctx)
		return nil, err
	})

	if err != nil {
		return types.WrapError(ErrCodeGraphRelationshipCreateFailed,
			fmt.Sprintf("failed to create %s relationship", relType), err)
	}

	return nil
}

// Clear deletes every node together with its relationships.
func (c *Neo4jClient) Clear(ctx context.Context) (int, error) {
	driver, err := c.acquire(ctx)
	if err != nil {
		return 0, err
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	deleted, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		if err != nil {
			return nil, err
		}
		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return summary.Counters().NodesDeleted(), nil
	})

	if err != nil {
		return 0, types.WrapError(ErrCodeGraphClearFailed,
			"failed to clear database", err)
	}

	return deleted.(int), nil
}

// classifyError turns a driver error into an AppError whose code tells
// callers whether the store is unreachable, the query timed out, or the
// statement itself was refused. For refusals the store's own message is kept.
func classifyError(ctx context.Context, err error) *types.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &types.AppError{Code: ErrCodeGraphQueryTimeout, Message: "query exceeded its time limit", Retryable: true, Cause: err}
	case errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled:
		return types.WrapError(ErrCodeGraphQueryCanceled, "query canceled", err)
	case neo4j.IsConnectivityError(err):
		return types.WrapError(ErrCodeGraphConnectionFailed, "graph store unreachable", err)
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		switch {
		case strings.HasPrefix(neoErr.Code, "Neo.ClientError.Transaction.TransactionTimedOut"):
			return &types.AppError{Code: ErrCodeGraphQueryTimeout, Message: neoErr.Msg, Retryable: true, Cause: err}
		case strings.HasPrefix(neoErr.Code, "Neo.ClientError.Security."),
			strings.HasPrefix(neoErr.Code, "Neo.TransientError.General.DatabaseUnavailable"),
			strings.HasPrefix(neoErr.Code, "Neo.ClientError.Database.DatabaseNotFound"):
			return types.WrapError(ErrCodeGraphConnectionFailed, neoErr.Msg, err)
		case strings.HasPrefix(neoErr.Code, "Neo.ClientError.Statement."):
			return &types.AppError{Code: ErrCodeGraphInvalidQuery, Message: neoErr.Msg, Retryable: true, Cause: err}
		default:
			return &types.AppError{Code: ErrCodeGraphQueryFailed, Message: neoErr.Msg, Retryable: true, Cause: err}
		}
	}

	return &types.AppError{Code: ErrCodeGraphQueryFailed, Message: err.Error(), Retryable: true, Cause: err}
}

// QuoteIdentifier wraps a label, relationship type or property name in backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// convertNeo4jResult converts Neo4j records and summary to our QueryResult format.
func convertNeo4jResult(keys []string, records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: keys,
	}
	if result.Columns == nil {
		result.Columns = []string{}
	}

	for _, record := range records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = NormalizeValue(record.Values[i])
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil && summary.Counters() != nil {
		counters := summary.Counters()
		result.Summary = QuerySummary{
			NodesCreated:         counters.NodesCreated(),
			NodesDeleted:         counters.NodesDeleted(),
			RelationshipsCreated: counters.RelationshipsCreated(),
			RelationshipsDeleted: counters.RelationshipsDeleted(),
			PropertiesSet:        counters.PropertiesSet(),
		}
	}

	return result
}

// NormalizeValue converts driver values into plain Go values that encode cleanly as JSON.
// Nodes become {labels, properties}, relationships {type, properties},
// paths {nodes, relationships}; temporal and spatial types become their string form.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case neo4j.Node:
		return map[string]any{
			"labels":     val.Labels,
			"properties": normalizeMap(val.Props),
		}
	case neo4j.Relationship:
		return map[string]any{
			"type":       val.Type,
			"properties": normalizeMap(val.Props),
		}
	case neo4j.Path:
		nodes := make([]any, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, NormalizeValue(n))
		}
		rels := make([]any, 0, len(val.Relationships))
		for _, r := range val.Relationships {
			rels = append(rels, NormalizeValue(r))
		}
		return map[string]any{"nodes": nodes, "relationships": rels}
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = NormalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeMap(val)
	case time.Time:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return val
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = NormalizeValue(v)
	}
	return out
}
