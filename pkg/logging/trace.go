package logging

import "log/slog"

// EnableTrace turns on Trace output. Init sets it when the configured level is TRACE.
var EnableTrace = false

// Trace logs a message at DEBUG level, but only if EnableTrace is true.
// Used for per-request payload dumps that are too noisy for plain DEBUG.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if EnableTrace {
		logger.Debug(msg, args...)
	}
}

// TraceDefault logs to the default logger if EnableTrace is true.
func TraceDefault(msg string, args ...any) {
	if EnableTrace {
		slog.Debug(msg, args...)
	}
}
