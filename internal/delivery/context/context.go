// Package context carries request-scoped values between the HTTP layer and
// the services: the request id, the request logger and the gated user.
package context

import (
	"context"
	"log/slog"

	"vidhub/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from clients and echoed back on every response.
const HeaderXRequestID = "X-Request-Id"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// echo.Context store keys.
const (
	echoRequestIDKey = "request_id"
	echoUserKey      = "user"
)

// SetRequestID records the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// GetRequestID returns the id set by SetRequestID, or "" when the request
// never passed the request id middleware.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoRequestIDKey).(string)

	return id
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext returns the id stored by WithRequestID or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the logger stored by WithLogger or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault is GetLogger with a fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// SetUser stores the user resolved by the auth gate.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(echoUserKey, user)
}

// GetUser returns the user stored by SetUser.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(echoUserKey).(*entity.User)

	return user, ok && user != nil
}
