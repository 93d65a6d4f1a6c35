package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey is the type used for context keys in this package.
type ContextKey string

// LoggerContextKey is the context key carrying the request logger.
const LoggerContextKey ContextKey = "logger"

// Middleware returns HTTP middleware that attaches the logger to the
// request context.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts the logger from the context, falling back to the
// process default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{Logger: slog.Default(), component: ComponentApp}
}
