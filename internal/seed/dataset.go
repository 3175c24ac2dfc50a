package seed

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// identifierPattern restricts labels and relationship types to names that need no quoting.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dataset is a set of nodes and the relationships between them.
type Dataset struct {
	Nodes         []Node         `yaml:"nodes"`
	Relationships []Relationship `yaml:"relationships"`
}

// Node is one node. Key is local to the dataset and is used by relationships
// to refer to the node; it is not written to the graph.
type Node struct {
	Key        string         `yaml:"key"`
	Labels     []string       `yaml:"labels"`
	Properties map[string]any `yaml:"properties"`
}

// Relationship connects two nodes by key.
type Relationship struct {
	From       string         `yaml:"from"`
	To         string         `yaml:"to"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

// ParseError reports a dataset that could not be read or is inconsistent.
type ParseError struct {
	Source  string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Sample returns the built-in dataset.
func Sample() *Dataset {
	ds, err := Parse(sampleYAML, "sample.yaml")
	if err != nil {
		panic(err)
	}
	return ds
}

// LoadFile reads and validates a dataset file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a YAML dataset. source names the input in errors.
func Parse(data []byte, source string) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, &ParseError{Source: source, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	if err := ds.Validate(); err != nil {
		return nil, &ParseError{Source: source, Message: err.Error()}
	}
	return &ds, nil
}

// Validate checks keys, names and property values.
func (d *Dataset) Validate() error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("dataset has no nodes")
	}

	keys := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.Key == "" {
			return fmt.Errorf("node %d: key is required", i)
		}
		if keys[n.Key] {
			return fmt.Errorf("node %q: duplicate key", n.Key)
		}
		keys[n.Key] = true

		if len(n.Labels) == 0 {
			return fmt.Errorf("node %q: at least one label is required", n.Key)
		}
		for _, label := range n.Labels {
			if !identifierPattern.MatchString(label) {
				return fmt.Errorf("node %q: invalid label %q", n.Key, label)
			}
		}
		if err := validateProperties(n.Properties); err != nil {
			return fmt.Errorf("node %q: %w", n.Key, err)
		}
	}

	for i, r := range d.Relationships {
		if !keys[r.From] {
			return fmt.Errorf("relationship %d: unknown node %q", i, r.From)
		}
		if !keys[r.To] {
			return fmt.Errorf("relationship %d: unknown node %q", i, r.To)
		}
		if !identifierPattern.MatchString(r.Type) {
			return fmt.Errorf("relationship %d: invalid type %q", i, r.Type)
		}
		if err := validateProperties(r.Properties); err != nil {
			return fmt.Errorf("relationship %d: %w", i, err)
		}
	}
	return nil
}

// Labels returns the distinct node labels, sorted.
func (d *Dataset) Labels() []string {
	seen := map[string]bool{}
	for _, n := range d.Nodes {
		for _, l := range n.Labels {
			seen[l] = true
		}
	}
	return sortedKeys(seen)
}

// RelationshipTypes returns the distinct relationship types, sorted.
func (d *Dataset) RelationshipTypes() []string {
	seen := map[string]bool{}
	for _, r := range d.Relationships {
		seen[r.Type] = true
	}
	return sortedKeys(seen)
}

// Neo4j properties hold scalars or homogeneous lists of scalars, never maps.
func validateProperties(props map[string]any) error {
	for key, value := range props {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("empty property name")
		}
		switch v := value.(type) {
		case nil:
			return fmt.Errorf("property %q has no value", key)
		case map[string]any:
			return fmt.Errorf("property %q: nested maps are not allowed", key)
		case []any:
			for _, item := range v {
				switch item.(type) {
				case map[string]any, []any, nil:
					return fmt.Errorf("property %q: lists may only hold scalar values", key)
				}
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
