package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Args      []any
	Timestamp time.Time
}

// MockNode is a node held by MockGraphClient.
type MockNode struct {
	ID     string
	Labels []string
	Props  map[string]any
}

// MockRelationship is a relationship held by MockGraphClient.
type MockRelationship struct {
	FromID string
	ToID   string
	Type   string
	Props  map[string]any
}

// QueryFunc computes the response for a Query call. It overrides the response queue when set.
type QueryFunc func(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

type queuedResponse struct {
	result QueryResult
	err    error
}

// MockGraphClient is a mock implementation of GraphClient for testing.
// Query responses come from QueryFunc if set, then a FIFO queue of results
// and errors, then an empty result.
type MockGraphClient struct {
	mu sync.RWMutex

	connected     bool
	healthStatus  types.HealthStatus
	nodes         map[string]MockNode
	relationships []MockRelationship
	calls         []MockCall
	nextNodeID    int

	queryFunc      QueryFunc
	responses      []queuedResponse
	connectError   error
	createNodeErr  error
	createRelError error
}

// NewMockGraphClient creates a new, disconnected mock graph client.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
		nodes:        make(map[string]MockNode),
		nextNodeID:   1,
	}
}

func (m *MockGraphClient) record(method string, args ...any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Connect")

	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Close")

	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Health")

	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Query records the call and returns the next scripted response.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	m.record("Query", cypher, params)

	if !m.connected {
		m.mu.Unlock()
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}

	fn := m.queryFunc
	if fn == nil && len(m.responses) > 0 {
		next := m.responses[0]
		m.responses = m.responses[1:]
		m.mu.Unlock()
		return next.result, next.err
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, cypher, params)
	}

	return QueryResult{
		Records: []map[string]any{},
		Columns: []string{},
	}, nil
}

// CreateNode records the call and stores a mock node.
func (m *MockGraphClient) CreateNode(ctx context.Context, labels []string, props map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateNode", labels, props)

	if !m.connected {
		return "", types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if m.createNodeErr != nil {
		return "", m.createNodeErr
	}

	nodeID := fmt.Sprintf("mock-node-%d", m.nextNodeID)
	m.nextNodeID++
	m.nodes[nodeID] = MockNode{ID: nodeID, Labels: labels, Props: props}

	return nodeID, nil
}

// CreateRelationship records the call and stores a mock relationship.
func (m *MockGraphClient) CreateRelationship(ctx context.Context, fromID, toID, relType string, props map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateRelationship", fromID, toID, relType, props)

	if !m.connected {
		return types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if m.createRelError != nil {
		return m.createRelError
	}

	if _, exists := m.nodes[fromID]; !exists {
		return types.NewError(ErrCodeGraphNodeNotFound,
			fmt.Sprintf("from node not found: %s", fromID))
	}
	if _, exists := m.nodes[toID]; !exists {
		return types.NewError(ErrCodeGraphNodeNotFound,
			fmt.Sprintf("to node not found: %s", toID))
	}

	m.relationships = append(m.relationships, MockRelationship{
		FromID: fromID,
		ToID:   toID,
		Type:   relType,
		Props:  props,
	})
	return nil
}

// Clear records the call and drops every stored node and relationship.
func (m *MockGraphClient) Clear(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Clear")

	if !m.connected {
		return 0, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}

	n := len(m.nodes)
	m.nodes = make(map[string]MockNode)
	m.relationships = nil
	return n, nil
}

// SetQueryFunc installs a function that answers every Query call.
func (m *MockGraphClient) SetQueryFunc(fn QueryFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryFunc = fn
}

// AddQueryResult queues a successful query response.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, queuedResponse{result: result})
}

// AddQueryError queues a failing query response.
func (m *MockGraphClient) AddQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, queuedResponse{err: err})
}

// SetHealthStatus configures what Health() returns while connected.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// SetConnectError configures Connect() to return an error.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCreateNodeError configures CreateNode() to return an error.
func (m *MockGraphClient) SetCreateNodeError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createNodeErr = err
}

// SetCreateRelationshipError configures CreateRelationship() to return an error.
func (m *MockGraphClient) SetCreateRelationshipError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createRelError = err
}

// GetCalls returns a copy of all recorded method calls.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// GetNodes returns a copy of the stored nodes.
func (m *MockGraphClient) GetNodes() map[string]MockNode {
	m.mu.RLock()
	defer m.mu.RUnlock()

	nodes := make(map[string]MockNode, len(m.nodes))
	for k, v := range m.nodes {
		nodes[k] = v
	}
	return nodes
}

// GetRelationships returns a copy of the stored relationships.
func (m *MockGraphClient) GetRelationships() []MockRelationship {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rels := make([]MockRelationship, len(m.relationships))
	copy(rels, m.relationships)
	return rels
}

// IsConnected returns whether the mock is in connected state.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}
