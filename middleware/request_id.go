package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/xraph/relay/command"
)

type requestIDContextKey struct{}

// RequestID assigns a fresh UUID to each dispatch and stores it in the
// context for downstream middlewares and handlers.
func RequestID() command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (any, error) {
			if GetRequestID(ctx) == "" {
				ctx = context.WithValue(ctx, requestIDContextKey{}, uuid.New().String())
			}
			return next(ctx, req)
		}
	}
}

// GetRequestID retrieves the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey{}).(string); ok {
		return id
	}
	return ""
}
