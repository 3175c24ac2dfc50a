package schema

import (
	"context"
	"fmt"
	"sort"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
)

const (
	labelsQuery            = "CALL db.labels() YIELD label RETURN label ORDER BY label"
	relationshipTypesQuery = "CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType ORDER BY relationshipType"
	patternsQuery          = `MATCH (a)-[r]->(b)
WITH a, r, b LIMIT $limit
UNWIND labels(a) AS from
UNWIND labels(b) AS to
RETURN DISTINCT from, type(r) AS rel, to`

	// DefaultSampleSize bounds how many nodes or relationships are scanned for property keys.
	DefaultSampleSize = 100

	// DefaultPatternSample bounds how many relationships are scanned for patterns.
	DefaultPatternSample = 1000
)

// Inspector reads the schema of the graph with read-only queries.
type Inspector struct {
	client        graph.GraphClient
	logger        *observability.TracedLogger
	sampleSize    int
	patternSample int
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithSampleSize sets how many elements per label or type are scanned for property keys.
func WithSampleSize(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.sampleSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *observability.TracedLogger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInspector creates an Inspector over client.
func NewInspector(client graph.GraphClient, opts ...Option) *Inspector {
	i := &Inspector{
		client:        client,
		logger:        observability.NewNopLogger(),
		sampleSize:    DefaultSampleSize,
		patternSample: DefaultPatternSample,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Describe builds a fresh Description of the graph.
// Store errors come back coded ErrCodeStoreUnavailable or ErrCodeIntrospectionFailed.
func (i *Inspector) Describe(ctx context.Context) (*Description, error) {
	labels, err := i.column(ctx, labelsQuery, nil, "label")
	if err != nil {
		return nil, wrapStoreError("node labels", err)
	}

	relTypes, err := i.column(ctx, relationshipTypesQuery, nil, "relationshipType")
	if err != nil {
		return nil, wrapStoreError("relationship types", err)
	}

	desc := &Description{
		Labels:            labels,
		RelationshipTypes: relTypes,
		Properties:        make(map[string][]string, len(labels)+len(relTypes)),
		Patterns:          []Pattern{},
	}

	for _, label := range labels {
		cypher := fmt.Sprintf("MATCH (n:%s) WITH n LIMIT $limit UNWIND keys(n) AS key RETURN DISTINCT key ORDER BY key",
			graph.QuoteIdentifier(label))
		keys, err := i.column(ctx, cypher, map[string]any{"limit": i.sampleSize}, "key")
		if err != nil {
			return nil, wrapStoreError("properties of "+label, err)
		}
		desc.Properties[label] = keys
	}

	for _, rel := range relTypes {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() WITH r LIMIT $limit UNWIND keys(r) AS key RETURN DISTINCT key ORDER BY key",
			graph.QuoteIdentifier(rel))
		keys, err := i.column(ctx, cypher, map[string]any{"limit": i.sampleSize}, "key")
		if err != nil {
			return nil, wrapStoreError("properties of "+rel, err)
		}
		desc.Properties[rel] = keys
	}

	result, err := i.client.Query(ctx, patternsQuery, map[string]any{"limit": i.patternSample})
	if err != nil {
		return nil, wrapStoreError("relationship patterns", err)
	}
	for _, rec := range result.Records {
		p := Pattern{From: stringValue(rec["from"]), Type: stringValue(rec["rel"]), To: stringValue(rec["to"])}
		if p.From != "" && p.Type != "" && p.To != "" {
			desc.Patterns = append(desc.Patterns, p)
		}
	}
	sortPatterns(desc.Patterns)

	i.logger.Debug(ctx, "schema described",
		"labels", len(desc.Labels),
		"relationship_types", len(desc.RelationshipTypes),
		"patterns", len(desc.Patterns))

	return desc, nil
}

// Stats counts nodes per label and relationships per type.
func (i *Inspector) Stats(ctx context.Context) (*Stats, error) {
	labels, err := i.column(ctx, labelsQuery, nil, "label")
	if err != nil {
		return nil, wrapStoreError("node labels", err)
	}
	relTypes, err := i.column(ctx, relationshipTypesQuery, nil, "relationshipType")
	if err != nil {
		return nil, wrapStoreError("relationship types", err)
	}

	stats := &Stats{
		NodeCounts:         make(map[string]int64, len(labels)),
		RelationshipCounts: make(map[string]int64, len(relTypes)),
	}

	for _, label := range labels {
		n, err := i.count(ctx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", graph.QuoteIdentifier(label)))
		if err != nil {
			return nil, wrapStoreError("count of "+label, err)
		}
		stats.NodeCounts[label] = n
	}

	for _, rel := range relTypes {
		n, err := i.count(ctx, fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS count", graph.QuoteIdentifier(rel)))
		if err != nil {
			return nil, wrapStoreError("count of "+rel, err)
		}
		stats.RelationshipCounts[rel] = n
		stats.TotalRelationships += n
	}

	total, err := i.count(ctx, "MATCH (n) RETURN count(n) AS count")
	if err != nil {
		return nil, wrapStoreError("node count", err)
	}
	stats.TotalNodes = total

	return stats, nil
}

// column runs cypher and returns the sorted, distinct, non-empty string values of one column.
func (i *Inspector) column(ctx context.Context, cypher string, params map[string]any, name string) ([]string, error) {
	result, err := i.client.Query(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(result.Records))
	values := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		v := stringValue(rec[name])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func (i *Inspector) count(ctx context.Context, cypher string) (int64, error) {
	result, err := i.client.Query(ctx, cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(result.Records) == 0 {
		return 0, nil
	}
	switch v := result.Records[0]["count"].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, nil
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
