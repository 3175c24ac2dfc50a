// Package synth writes natural-language answers from query results.
package synth
