package events

import (
	"context"
	"sync"

	"github.com/xraph/relay/logger"
)

// Listener handles one event occurrence. Returning an error aborts the
// remaining listeners for that Emit call.
type Listener func(ctx context.Context, data any) error

// Bus is a name-keyed publish/subscribe multiplexer. Emission is
// synchronous and runs listeners in subscription order.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
	}
}

// Subscribe appends a listener for the named event. Duplicate listeners
// are kept and will be invoked once per subscription.
func (b *Bus) Subscribe(event string, l Listener) {
	if l == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[event] = append(b.listeners[event], l)
}

// Emit synchronously invokes every listener for the named event in
// subscription order. Zero listeners is a silent no-op. A listener error
// propagates to the caller and aborts the remaining listeners for this
// call; callers wanting isolation wrap their listeners with Guarded.
func (b *Bus) Emit(ctx context.Context, event string, data any) error {
	b.mu.RLock()
	listeners := b.listeners[event]
	b.mu.RUnlock()

	for _, l := range listeners {
		if err := l(ctx, data); err != nil {
			return err
		}
	}
	return nil
}

// ListenerCount returns the number of subscriptions for the named event.
func (b *Bus) ListenerCount(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[event])
}

// Guarded wraps a listener so its error is logged and swallowed instead of
// aborting the remaining listeners. Isolation is a caller choice, not a
// bus guarantee.
func Guarded(log logger.Logger, l Listener) Listener {
	return func(ctx context.Context, data any) error {
		if err := l(ctx, data); err != nil {
			if log != nil {
				log.Error("event listener failed", logger.Error(err))
			}
		}
		return nil
	}
}
