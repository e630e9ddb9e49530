// Package context carries the request id and the request-scoped logger from
// the HTTP layer down to the services without coupling them to echo.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header the request id is read from and echoed back on.
const HeaderXRequestID = "X-Request-Id"

// ctxKey keeps the context values private to this package.
type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyLogger    ctxKey = "logger"
)

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

// GetRequestID reads the request id from the echo context, minting a fresh
// one when the middleware has not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(keyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// WithRequestID attaches the request id to a context.Context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// RequestIDFrom reads the request id off a context.Context, empty if absent.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithLogger attaches a request-scoped logger to a context.Context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context carries none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
