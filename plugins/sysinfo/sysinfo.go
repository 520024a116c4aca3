// Package sysinfo contributes runtime introspection commands. It declares
// a dependency on the "metrics" container binding: hosts that do not
// register a collector never see these commands.
package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/di"
	"github.com/xraph/relay/events"
	"github.com/xraph/relay/metrics"
	"github.com/xraph/relay/plugin"
)

var startedAt = time.Now()

func init() {
	plugin.Builtin(&plugin.Func{
		UnitName: "sysinfo",
		Fn:       register,
		Meta: &plugin.Metadata{
			Version:      "1.0.0",
			Description:  "Runtime and command statistics",
			Author:       "relay",
			Dependencies: []string{"metrics"},
			Enabled:      true,
		},
	})
}

func register(_ *events.Bus, registry *command.Registry) error {
	registry.Register("/uptime", func(context.Context, *command.Request) (any, error) {
		return fmt.Sprintf("up %s, %d goroutines",
			time.Since(startedAt).Round(time.Second), runtime.NumGoroutine()), nil
	}, &command.Metadata{
		Description: "Show process uptime",
		Usage:       "/uptime",
		Category:    "system",
	})

	registry.Register("/stats", statsHandler, &command.Metadata{
		Description: "Show per-command execution statistics",
		Usage:       "/stats",
		Category:    "system",
	})

	return nil
}

func statsHandler(context.Context, *command.Request) (any, error) {
	svc, err := di.Locate("metrics")
	if err != nil {
		return nil, err
	}

	collector, ok := svc.(*metrics.MemoryCollector)
	if !ok {
		return "no in-memory statistics available", nil
	}

	snap := collector.Snapshot()
	if len(snap) == 0 {
		return "no commands recorded yet", nil
	}

	out := ""
	for name, stats := range snap {
		out += fmt.Sprintf("%s: %d calls, %d failures, avg %s\n",
			name, stats.Count, stats.Failures, stats.AverageDuration().Round(time.Microsecond))
	}
	return out, nil
}
