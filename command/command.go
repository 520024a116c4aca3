package command

import (
	"context"
)

// Metadata describes a registered command. It is constructed once at
// registration time and never mutated afterwards.
type Metadata struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Usage        string `json:"usage"`
	Category     string `json:"category"`
	RequiresAuth bool   `json:"requires_auth"`
	RateLimited  bool   `json:"rate_limited"`
}

// Replier delivers a user-facing message back to whoever issued the
// command. Policy middlewares use it for rejection replies; the transport
// adapter decides what delivery means.
type Replier interface {
	Reply(ctx context.Context, text string) error
}

// Request carries one inbound command through the middleware chain into
// the handler. Update and Meta are opaque transport carriers: the
// framework passes the same objects everywhere and imposes no shape on
// them.
type Request struct {
	// Command is the dispatched command name, filled in by the registry.
	Command string

	// UserID identifies the requesting user for policy middlewares.
	UserID int64

	// Args holds the parsed command arguments, if the transport parses any.
	Args []string

	// Update is the transport's inbound message object, passed through
	// unmodified.
	Update any

	// Meta is the transport's per-request context object, passed through
	// unmodified.
	Meta any

	// Replier, when non-nil, lets middlewares and handlers send
	// user-facing messages.
	Replier Replier
}

// Reply sends text through the request's replier, if one is attached.
func (r *Request) Reply(ctx context.Context, text string) error {
	if r.Replier == nil {
		return nil
	}
	return r.Replier.Reply(ctx, text)
}

// Handler executes one command.
type Handler func(ctx context.Context, req *Request) (any, error)

// Middleware wraps a handler with one cross-cutting policy. A middleware
// either calls next exactly once to continue, or returns without calling
// it to short-circuit, and must return whatever its downstream call
// returned unless it is intentionally short-circuiting.
type Middleware func(next Handler) Handler
