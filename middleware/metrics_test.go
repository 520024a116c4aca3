package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/metrics"
)

func TestMetrics_RecordsSuccess(t *testing.T) {
	collector := metrics.NewMemoryCollector()
	handler := Metrics(collector)(func(context.Context, *command.Request) (any, error) {
		time.Sleep(time.Millisecond)
		return "ok", nil
	})

	got, err := handler(context.Background(), &command.Request{Command: "/ping"})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	snap := collector.Snapshot()
	require.Contains(t, snap, "/ping")
	assert.Equal(t, int64(1), snap["/ping"].Count)
	assert.Zero(t, snap["/ping"].Failures)
	assert.Positive(t, snap["/ping"].LastDuration)
}

func TestMetrics_RecordsFailureAndRepropagates(t *testing.T) {
	collector := metrics.NewMemoryCollector()
	boom := errors.New("boom")
	handler := Metrics(collector)(func(context.Context, *command.Request) (any, error) {
		return nil, boom
	})

	_, err := handler(context.Background(), &command.Request{Command: "/ping"})
	assert.Equal(t, boom, err)

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap["/ping"].Failures)
	assert.Equal(t, "boom", snap["/ping"].LastError)
}
