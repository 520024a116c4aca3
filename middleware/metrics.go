package middleware

import (
	"context"
	"time"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/metrics"
)

// Metrics times the downstream call and records the outcome to the
// collector in a deferred block, so a record is written whether the
// handler succeeds, fails, or the dispatch is cancelled mid-chain. Errors
// re-propagate after recording.
func Metrics(collector metrics.Collector) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (result any, err error) {
			start := time.Now()
			defer func() {
				errMsg := ""
				if err != nil {
					errMsg = err.Error()
				}
				collector.RecordCommand(req.Command, time.Since(start), err == nil, errMsg)
			}()

			return next(ctx, req)
		}
	}
}
