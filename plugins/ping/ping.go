// Package ping contributes the /ping health command. Importing the
// package is enough to make the plugin discoverable.
package ping

import (
	"context"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/plugin"
)

// EventPingReceived is emitted on every handled /ping.
const EventPingReceived = "ping.received"

func init() {
	plugin.Builtin(&plugin.Func{
		UnitName: "ping",
		Fn:       register,
		Meta: &plugin.Metadata{
			Version:     "1.1.0",
			Description: "Liveness check command",
			Author:      "relay",
			Enabled:     true,
		},
	})
}

func register(bus *events.Bus, registry *command.Registry) error {
	registry.Register("/ping", func(ctx context.Context, req *command.Request) (any, error) {
		// Side effects stay off the handling path: listeners decide what a
		// ping means to them.
		if err := bus.Emit(ctx, EventPingReceived, req.UserID); err != nil {
			return nil, err
		}
		return "pong", nil
	}, &command.Metadata{
		Description: "Check that the bot is alive",
		Usage:       "/ping",
		Category:    "system",
	})

	return nil
}
