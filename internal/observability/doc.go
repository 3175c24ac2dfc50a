// Package observability provides logging, tracing and metrics for the service.
//
// Logging uses log/slog through TracedLogger, which tags every line with the
// component name, the request id and the active trace and span ids, and
// redacts prompt, api_key, password and token values above debug level.
//
// Tracing uses OpenTelemetry with an OTLP gRPC exporter when enabled.
// Metrics are Prometheus collectors on a per-process registry served at /metrics.
package observability
