// Package api serves the question-answering engine over HTTP: synchronous
// and queued questions, task polling, health and schema endpoints, and
// Prometheus metrics.
package api
