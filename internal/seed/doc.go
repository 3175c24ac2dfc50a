// Package seed loads YAML datasets of nodes and relationships into the graph.
// A small sample dataset is built in.
package seed
