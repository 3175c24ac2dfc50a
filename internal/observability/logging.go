package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// TracedLogger is a structured logger with automatic trace correlation.
// It wraps slog.Logger and adds the component name, the request id and
// the OpenTelemetry trace and span ids found in the context.
type TracedLogger struct {
	logger          *slog.Logger
	component       string
	redactSensitive bool
}

// NewTracedLogger creates a new TracedLogger for the named component.
func NewTracedLogger(handler slog.Handler, component string) *TracedLogger {
	return &TracedLogger{
		logger:          slog.New(handler),
		component:       component,
		redactSensitive: true,
	}
}

// NewNopLogger returns a logger that discards everything. Useful in tests.
func NewNopLogger() *TracedLogger {
	return NewTracedLogger(slog.NewTextHandler(io.Discard, nil), "nop")
}

// Named returns a logger for a sub-component sharing the same handler.
func (l *TracedLogger) Named(component string) *TracedLogger {
	return &TracedLogger{
		logger:          l.logger,
		component:       component,
		redactSensitive: l.redactSensitive,
	}
}

// Debug logs a debug-level message. Debug logs include all fields without redaction.
func (l *TracedLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// Info logs an info-level message. Sensitive data in args is redacted.
func (l *TracedLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).Info(msg, args...)
}

// Warn logs a warning-level message. Sensitive data in args is redacted.
func (l *TracedLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).Warn(msg, args...)
}

// Error logs an error-level message. Sensitive data in args is redacted.
func (l *TracedLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.redactSensitive {
		args = redactSensitiveData(args)
	}
	l.WithContext(ctx).Error(msg, args...)
}

// WithContext creates a slog.Logger with correlation fields added.
func (l *TracedLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.logger.With(slog.String("component", l.component))

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(slog.String("request_id", requestID))
	}

	if traceID, spanID := ExtractSpanContext(ctx); traceID != "" {
		logger = logger.With(
			slog.String("trace_id", traceID),
			slog.String("span_id", spanID),
		)
	}

	return logger
}

// Slog returns the underlying slog.Logger without correlation fields.
func (l *TracedLogger) Slog() *slog.Logger {
	return l.logger
}

// ParseLevel converts a configured level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewHandler creates a JSON or text handler writing to w at the given level.
func NewHandler(w io.Writer, format, level string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONHandler(w, lvl), nil
	case "text":
		return NewTextHandler(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewJSONHandler creates a new JSON log handler with the specified output and level.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// NewTextHandler creates a new text log handler with the specified output and level.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// sensitiveFields are compared after lowercasing and removing underscores.
var sensitiveFields = map[string]bool{
	"prompt":     true,
	"prompts":    true,
	"apikey":     true,
	"secret":     true,
	"password":   true,
	"token":      true,
	"credential": true,
	"secretkey":  true,
}

// redactSensitiveData replaces the values of sensitive keys with "[REDACTED]".
func redactSensitiveData(args []any) []any {
	if len(args)%2 != 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 0; i < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			normalizedKey := strings.ToLower(strings.ReplaceAll(key, "_", ""))
			if sensitiveFields[normalizedKey] {
				redacted[i+1] = "[REDACTED]"
			}
		}
	}

	return redacted
}
