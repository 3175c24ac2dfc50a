// Package executor runs generated Cypher against Neo4j.
//
// Statements are checked for write clauses before they are sent, and are then
// run in a read-access transaction under a per-attempt timeout.
package executor
