package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/logger"
)

func TestBus_EmitWithNoListeners(t *testing.T) {
	b := New()

	err := b.Emit(context.Background(), "nothing.here", "payload")
	assert.NoError(t, err)
}

func TestBus_EmitInvokesInSubscriptionOrder(t *testing.T) {
	b := New()
	var order []string

	b.Subscribe("task.created", func(_ context.Context, data any) error {
		assert.Equal(t, "payload", data)
		order = append(order, "first")
		return nil
	})
	b.Subscribe("task.created", func(_ context.Context, data any) error {
		assert.Equal(t, "payload", data)
		order = append(order, "second")
		return nil
	})

	require.NoError(t, b.Emit(context.Background(), "task.created", "payload"))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBus_DuplicateListenersKept(t *testing.T) {
	b := New()
	calls := 0
	l := func(context.Context, any) error {
		calls++
		return nil
	}

	b.Subscribe("x", l)
	b.Subscribe("x", l)

	require.NoError(t, b.Emit(context.Background(), "x", nil))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, b.ListenerCount("x"))
}

func TestBus_ListenerErrorAbortsRemaining(t *testing.T) {
	b := New()
	boom := errors.New("boom")
	reached := false

	b.Subscribe("x", func(context.Context, any) error { return boom })
	b.Subscribe("x", func(context.Context, any) error {
		reached = true
		return nil
	})

	err := b.Emit(context.Background(), "x", nil)
	assert.Equal(t, boom, err)
	assert.False(t, reached)
}

func TestBus_GuardedListenerIsolatesFailure(t *testing.T) {
	b := New()
	boom := errors.New("boom")
	reached := false

	b.Subscribe("x", Guarded(logger.NewNoopLogger(), func(context.Context, any) error {
		return boom
	}))
	b.Subscribe("x", func(context.Context, any) error {
		reached = true
		return nil
	})

	require.NoError(t, b.Emit(context.Background(), "x", nil))
	assert.True(t, reached)
}
