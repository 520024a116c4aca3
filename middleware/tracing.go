package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/relay/command"
)

// Tracing starts one span per dispatch. Exporter setup belongs to the
// host; with no SDK installed the returned tracer is a no-op.
func Tracing(tracerName string) command.Middleware {
	tracer := otel.Tracer(tracerName)

	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (any, error) {
			ctx, span := tracer.Start(ctx, "dispatch "+req.Command,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("relay.command", req.Command),
					attribute.Int64("relay.user_id", req.UserID),
				),
			)
			defer span.End()

			result, err := next(ctx, req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return result, err
		}
	}
}
