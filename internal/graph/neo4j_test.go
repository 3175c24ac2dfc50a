package graph

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func validConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

func TestGraphClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GraphClientConfig)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*GraphClientConfig) {}},
		{name: "empty URI", mutate: func(c *GraphClientConfig) { c.URI = "" }, wantErr: true},
		{name: "empty username", mutate: func(c *GraphClientConfig) { c.Username = "" }, wantErr: true},
		{name: "empty password", mutate: func(c *GraphClientConfig) { c.Password = "" }, wantErr: true},
		{name: "zero connection timeout", mutate: func(c *GraphClientConfig) { c.ConnectionTimeout = 0 }, wantErr: true},
		{name: "zero retry time", mutate: func(c *GraphClientConfig) { c.MaxTransactionRetryTime = 0 }, wantErr: true},
		{name: "negative query timeout", mutate: func(c *GraphClientConfig) { c.QueryTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, ErrCodeGraphInvalidConfig, types.CodeOf(err))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, 50, cfg.MaxConnectionPoolSize)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
}

func TestNewNeo4jClient_InvalidConfig(t *testing.T) {
	_, err := NewNeo4jClient(GraphClientConfig{})
	require.Error(t, err)
	assert.True(t, types.HasCode(err, ErrCodeGraphInvalidConfig))
}

// fakeDriver stands in for a driver whose server may or may not be reachable.
// Only the methods the client calls outside a session are implemented.
type fakeDriver struct {
	neo4j.DriverWithContext
	verifyErr error
	closed    bool
}

func (d *fakeDriver) VerifyConnectivity(context.Context) error { return d.verifyErr }

func (d *fakeDriver) Close(context.Context) error {
	d.closed = true
	return nil
}

func offlineClient(t *testing.T) *Neo4jClient {
	t.Helper()
	client, err := NewNeo4jClient(validConfig())
	require.NoError(t, err)
	client.newDriver = func() (neo4j.DriverWithContext, error) {
		return &fakeDriver{verifyErr: errors.New("connection refused")}, nil
	}
	return client
}

func TestNeo4jClient_NotConnected(t *testing.T) {
	client := offlineClient(t)
	ctx := context.Background()

	_, err := client.Query(ctx, "RETURN 1", nil)
	assert.True(t, IsUnavailable(err))

	_, err = client.CreateNode(ctx, []string{"Person"}, nil)
	assert.True(t, IsUnavailable(err))

	err = client.CreateRelationship(ctx, "a", "b", "KNOWS", nil)
	assert.True(t, IsUnavailable(err))

	_, err = client.Clear(ctx)
	assert.True(t, IsUnavailable(err))

	assert.True(t, client.Health(ctx).IsUnhealthy())
	assert.NoError(t, client.Close(ctx))
}

func TestNeo4jClient_ReconnectsAfterStoreComesUp(t *testing.T) {
	client, err := NewNeo4jClient(validConfig())
	require.NoError(t, err)
	ctx := context.Background()

	storeUp := false
	dials := 0
	var failed []*fakeDriver
	client.newDriver = func() (neo4j.DriverWithContext, error) {
		dials++
		if !storeUp {
			d := &fakeDriver{verifyErr: errors.New("connection refused")}
			failed = append(failed, d)
			return d, nil
		}
		return &fakeDriver{}, nil
	}

	err = client.Connect(ctx)
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
	assert.True(t, client.Health(ctx).IsUnhealthy())
	for _, d := range failed {
		assert.True(t, d.closed, "failed drivers are released")
	}

	storeUp = true
	assert.True(t, client.Health(ctx).IsHealthy())

	before := dials
	assert.True(t, client.Health(ctx).IsHealthy())
	assert.Equal(t, before, dials, "a live driver is reused")

	require.NoError(t, client.Close(ctx))
	_, err = client.Query(ctx, "RETURN 1", nil)
	assert.True(t, types.HasCode(err, ErrCodeGraphConnectionClosed))
	assert.Equal(t, before, dials, "a closed client does not redial")
}

func TestNeo4jClient_ConnectRetries(t *testing.T) {
	cfg := validConfig()
	cfg.ConnectRetries = 3
	client, err := NewNeo4jClient(cfg)
	require.NoError(t, err)

	dials := 0
	client.newDriver = func() (neo4j.DriverWithContext, error) {
		dials++
		if dials < 3 {
			return &fakeDriver{verifyErr: errors.New("connection refused")}, nil
		}
		return &fakeDriver{}, nil
	}

	require.NoError(t, client.Connect(context.Background()))
	assert.Equal(t, 3, dials)
	assert.True(t, client.Health(context.Background()).IsHealthy())
}

func TestClassifyError(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		err       error
		code      types.ErrorCode
		retryable bool
		message   string
	}{
		{
			name:      "deadline",
			err:       fmt.Errorf("run: %w", context.DeadlineExceeded),
			code:      ErrCodeGraphQueryTimeout,
			retryable: true,
		},
		{
			name: "canceled",
			err:  context.Canceled,
			code: ErrCodeGraphQueryCanceled,
		},
		{
			name:      "syntax error keeps store message",
			err:       &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "Invalid input 'RETRN'"},
			code:      ErrCodeGraphInvalidQuery,
			retryable: true,
			message:   "Invalid input 'RETRN'",
		},
		{
			name:      "server transaction timeout",
			err:       &neo4j.Neo4jError{Code: "Neo.ClientError.Transaction.TransactionTimedOutClientConfiguration", Msg: "timed out"},
			code:      ErrCodeGraphQueryTimeout,
			retryable: true,
		},
		{
			name: "authentication failure",
			err:  &neo4j.Neo4jError{Code: "Neo.ClientError.Security.Unauthorized", Msg: "bad credentials"},
			code: ErrCodeGraphConnectionFailed,
		},
		{
			name:      "unknown store error",
			err:       errors.New("something odd"),
			code:      ErrCodeGraphQueryFailed,
			retryable: true,
			message:   "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := classifyError(ctx, tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.retryable, appErr.Retryable)
			assert.ErrorIs(t, appErr, tt.err)
			if tt.message != "" {
				assert.Equal(t, tt.message, StoreMessage(appErr))
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`Person`", QuoteIdentifier("Person"))
	assert.Equal(t, "`WORKED_ON`", QuoteIdentifier("WORKED_ON"))
	assert.Equal(t, "`a``b`", QuoteIdentifier("a`b"))
}

func TestNormalizeValue(t *testing.T) {
	node := neo4j.Node{
		ElementId: "4:abc:1",
		Labels:    []string{"Project"},
		Props:     map[string]any{"name": "AI Chatbot", "status": "active"},
	}
	rel := neo4j.Relationship{Type: "USES", Props: map[string]any{"since": int64(2021)}}

	t.Run("node", func(t *testing.T) {
		got := NormalizeValue(node).(map[string]any)
		assert.Equal(t, []string{"Project"}, got["labels"])
		assert.Equal(t, "AI Chatbot", got["properties"].(map[string]any)["name"])
	})

	t.Run("relationship", func(t *testing.T) {
		got := NormalizeValue(rel).(map[string]any)
		assert.Equal(t, "USES", got["type"])
	})

	t.Run("path", func(t *testing.T) {
		path := neo4j.Path{Nodes: []neo4j.Node{node, node}, Relationships: []neo4j.Relationship{rel}}
		got := NormalizeValue(path).(map[string]any)
		assert.Len(t, got["nodes"], 2)
		assert.Len(t, got["relationships"], 1)
	})

	t.Run("nested list", func(t *testing.T) {
		got := NormalizeValue([]any{node, "x", int64(3)}).([]any)
		assert.IsType(t, map[string]any{}, got[0])
		assert.Equal(t, "x", got[1])
		assert.Equal(t, int64(3), got[2])
	})

	t.Run("temporal", func(t *testing.T) {
		got := NormalizeValue(neo4j.Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.IsType(t, "", got)
	})

	t.Run("scalars pass through", func(t *testing.T) {
		assert.Nil(t, NormalizeValue(nil))
		assert.Equal(t, 1.5, NormalizeValue(1.5))
		assert.Equal(t, true, NormalizeValue(true))
	})
}

func TestConvertNeo4jResult_KeepsColumnsForEmptyResult(t *testing.T) {
	result := convertNeo4jResult([]string{"name", "count"}, nil, nil)
	assert.Equal(t, []string{"name", "count"}, result.Columns)
	assert.Empty(t, result.Records)

	result = convertNeo4jResult(nil, nil, nil)
	assert.NotNil(t, result.Columns)
}

func TestConvertNeo4jResult_Records(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"name"}, Values: []any{"Alice Johnson"}},
		{Keys: []string{"name"}, Values: []any{"Bob Smith"}},
	}
	result := convertNeo4jResult([]string{"name"}, records, nil)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Bob Smith", result.Records[1]["name"])
}
