// Package qa answers English questions about a Neo4j graph.
//
// A Pipeline describes the schema, then lets a Controller alternate between
// generating a Cypher query and executing it until one attempt succeeds or the
// attempt budget runs out. Each failed attempt is fed back to the generator so
// the next query can correct it. The rows of the successful attempt are turned
// into an answer by a Synthesizer.
//
// The package only declares the small interfaces it consumes. Concrete
// components live in the schema, generator, executor and synth packages.
package qa
