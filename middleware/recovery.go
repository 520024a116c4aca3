package middleware

import (
	"context"
	"fmt"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/logger"
)

// Recovery converts a downstream panic into an error. It is not installed
// by default: hosts that prefer panics to crash the process simply leave
// it out.
func Recovery(log logger.Logger) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					if log != nil {
						log.Error("panic recovered",
							logger.String("command", req.Command),
							logger.Any("panic", r),
							logger.Stack("stacktrace"),
						)
					}
					result = nil
					err = fmt.Errorf("command %s panicked: %v", req.Command, r)
				}
			}()

			return next(ctx, req)
		}
	}
}
