package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Pattern is one observed relationship shape, (:From)-[:Type]->(:To).
type Pattern struct {
	From string `json:"from"`
	Type string `json:"type"`
	To   string `json:"to"`
}

// String renders the pattern in Cypher notation.
func (p Pattern) String() string {
	return fmt.Sprintf("(:%s)-[:%s]->(:%s)", p.From, p.Type, p.To)
}

// Description is a compact, deterministic view of the graph schema.
// All slices are sorted. It is not modified after Describe returns it.
type Description struct {
	Labels            []string            `json:"labels"`
	RelationshipTypes []string            `json:"relationship_types"`
	Properties        map[string][]string `json:"properties"`
	Patterns          []Pattern           `json:"patterns"`
}

// IsEmpty reports whether the graph has no labels and no relationship types.
func (d *Description) IsEmpty() bool {
	return d == nil || (len(d.Labels) == 0 && len(d.RelationshipTypes) == 0)
}

// String renders the description as the text block embedded in prompts.
// Equal descriptions always render identically.
func (d *Description) String() string {
	if d.IsEmpty() {
		return "The graph is empty."
	}

	var b strings.Builder

	b.WriteString("Node labels and their properties:\n")
	for _, label := range d.Labels {
		fmt.Fprintf(&b, "- %s %s\n", label, formatProperties(d.Properties[label]))
	}

	b.WriteString("Relationship types and their properties:\n")
	for _, rel := range d.RelationshipTypes {
		fmt.Fprintf(&b, "- %s %s\n", rel, formatProperties(d.Properties[rel]))
	}

	if len(d.Patterns) > 0 {
		b.WriteString("The relationships are:\n")
		for _, p := range d.Patterns {
			fmt.Fprintf(&b, "%s\n", p)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatProperties(props []string) string {
	if len(props) == 0 {
		return "{}"
	}
	return "{" + strings.Join(props, ", ") + "}"
}

func sortPatterns(patterns []Pattern) {
	sort.Slice(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.To < b.To
	})
}

// Stats counts the contents of the graph.
type Stats struct {
	NodeCounts         map[string]int64 `json:"node_counts"`
	RelationshipCounts map[string]int64 `json:"relationship_counts"`
	TotalNodes         int64            `json:"total_nodes"`
	TotalRelationships int64            `json:"total_relationships"`
}
