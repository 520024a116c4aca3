package middleware

import (
	"context"
	"time"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/logger"
)

// Logging logs command entry and elapsed-time exit. Downstream errors are
// logged with the elapsed time and then re-returned unchanged.
func Logging(log logger.Logger) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (any, error) {
			log.Info("command started",
				logger.String("command", req.Command),
				logger.Int64("user_id", req.UserID),
			)

			start := time.Now()
			result, err := next(ctx, req)
			elapsed := time.Since(start)

			if err != nil {
				log.Error("command failed",
					logger.String("command", req.Command),
					logger.Duration("duration", elapsed),
					logger.Error(err),
				)
				return result, err
			}

			log.Info("command completed",
				logger.String("command", req.Command),
				logger.Duration("duration", elapsed),
			)
			return result, nil
		}
	}
}
