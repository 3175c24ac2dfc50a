// Package generator turns an English question into a Cypher statement with a language model.
package generator
