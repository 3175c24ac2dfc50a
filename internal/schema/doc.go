// Package schema introspects a Neo4j graph: node labels, relationship types,
// their property keys and the relationship patterns between labels.
package schema
