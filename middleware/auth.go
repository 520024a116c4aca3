package middleware

import (
	"context"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/logger"
)

const unauthorizedReply = "Sorry, you are not authorized to use this bot."

// Authorization gates every command on a single allowed user. A request
// from anyone else short-circuits with a rejection reply: the denial is a
// return, not an error. Place this before RateLimit so unauthorized
// traffic never consumes rate budget.
func Authorization(allowedUserID int64, log logger.Logger) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (any, error) {
			if req.UserID != allowedUserID {
				if log != nil {
					log.Warn("unauthorized command rejected",
						logger.String("command", req.Command),
						logger.Int64("user_id", req.UserID),
					)
				}
				_ = req.Reply(ctx, unauthorizedReply)
				return nil, nil
			}
			return next(ctx, req)
		}
	}
}
