package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagMiddleware(name string, order *[]string, callNext bool) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (any, error) {
			*order = append(*order, name)
			if !callNext {
				return nil, nil
			}
			return next(ctx, req)
		}
	}
}

func TestChain_ExecutesInRegistrationOrder(t *testing.T) {
	chain := NewChain()
	var order []string

	chain.Use(
		tagMiddleware("a", &order, true),
		tagMiddleware("b", &order, true),
		tagMiddleware("c", &order, true),
	)

	handler := func(context.Context, *Request) (any, error) {
		order = append(order, "handler")
		return "done", nil
	}

	got, err := chain.Execute(handler)(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, []string{"a", "b", "c", "handler"}, order)
}

func TestChain_ShortCircuitSkipsHandler(t *testing.T) {
	chain := NewChain()
	var order []string
	handlerCalls := 0

	chain.Use(
		tagMiddleware("a", &order, true),
		tagMiddleware("b", &order, true),
		tagMiddleware("c", &order, false),
	)

	handler := func(context.Context, *Request) (any, error) {
		handlerCalls++
		return "done", nil
	}

	got, err := chain.Execute(handler)(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, handlerCalls)
}

func TestChain_EmptyChainRunsHandler(t *testing.T) {
	chain := NewChain()

	got, err := chain.Execute(func(context.Context, *Request) (any, error) {
		return 42, nil
	})(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Zero(t, chain.Len())
}

func TestChain_ResultPassesThroughTransparently(t *testing.T) {
	chain := NewChain()
	chain.Use(func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (any, error) {
			return next(ctx, req)
		}
	})

	got, err := chain.Execute(func(context.Context, *Request) (any, error) {
		return "pong", nil
	})(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, "pong", got)
}
