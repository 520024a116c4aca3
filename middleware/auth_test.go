package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/logger"
)

type recordingReplier struct {
	replies []string
}

func (r *recordingReplier) Reply(_ context.Context, text string) error {
	r.replies = append(r.replies, text)
	return nil
}

func countingHandler(calls *int, result any) command.Handler {
	return func(context.Context, *command.Request) (any, error) {
		*calls++
		return result, nil
	}
}

func TestAuthorization_AllowedUserReachesHandler(t *testing.T) {
	calls := 0
	handler := Authorization(42, logger.NewNoopLogger())(countingHandler(&calls, "ok"))

	got, err := handler(context.Background(), &command.Request{Command: "/ping", UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestAuthorization_RejectsOtherUsers(t *testing.T) {
	calls := 0
	replier := &recordingReplier{}
	handler := Authorization(42, logger.NewNoopLogger())(countingHandler(&calls, "ok"))

	got, err := handler(context.Background(), &command.Request{
		Command: "/ping",
		UserID:  7,
		Replier: replier,
	})

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, calls)
	assert.Equal(t, []string{unauthorizedReply}, replier.replies)
}

func TestAuthorization_RejectionWithoutReplier(t *testing.T) {
	calls := 0
	handler := Authorization(42, nil)(countingHandler(&calls, "ok"))

	got, err := handler(context.Background(), &command.Request{Command: "/ping", UserID: 7})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, calls)
}
