package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/relay/command"
	"github.com/xraph/relay/logger"
)

const rateLimitedReply = "Rate limit exceeded. Please slow down."

// RateLimitStore holds sliding-window state. Take purges entries older
// than window relative to now, rejects when the remaining count has
// reached max, and otherwise records the current timestamp and allows.
type RateLimitStore interface {
	Take(ctx context.Context, key string, window time.Duration, max int) (bool, error)
}

// SlidingWindow is a recomputed sliding-window rate limiter: the count is
// re-derived relative to "now" on every check, so bursts are smoothed
// rather than aligned to fixed buckets.
type SlidingWindow struct {
	max    int
	window time.Duration
	store  RateLimitStore
	keyFn  func(*command.Request) string
}

// SlidingWindowOption configures a SlidingWindow.
type SlidingWindowOption func(*SlidingWindow)

// WithStore replaces the in-memory store, e.g. with the Redis store.
func WithStore(store RateLimitStore) SlidingWindowOption {
	return func(sw *SlidingWindow) {
		sw.store = store
	}
}

// WithWindow overrides the one-minute window.
func WithWindow(window time.Duration) SlidingWindowOption {
	return func(sw *SlidingWindow) {
		sw.window = window
	}
}

// WithKeyFunc derives the limiter key from the request, e.g. per user.
// The default is a single shared window for the whole instance.
func WithKeyFunc(fn func(*command.Request) string) SlidingWindowOption {
	return func(sw *SlidingWindow) {
		sw.keyFn = fn
	}
}

// NewSlidingWindow creates a limiter allowing maxPerWindow requests per
// one-minute window.
func NewSlidingWindow(maxPerWindow int, opts ...SlidingWindowOption) *SlidingWindow {
	sw := &SlidingWindow{
		max:    maxPerWindow,
		window: time.Minute,
		store:  NewMemoryRateLimitStore(),
		keyFn:  func(*command.Request) string { return "" },
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw
}

// Allow checks and consumes one slot for the request.
func (sw *SlidingWindow) Allow(ctx context.Context, req *command.Request) (bool, error) {
	return sw.store.Take(ctx, sw.keyFn(req), sw.window, sw.max)
}

// RateLimit short-circuits with a rate-limit reply once the limiter's
// window is full. Store failures fail open with a warning so a broken
// backing store cannot take every command down.
func RateLimit(limiter *SlidingWindow, log logger.Logger) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, req *command.Request) (any, error) {
			allowed, err := limiter.Allow(ctx, req)
			if err != nil {
				if log != nil {
					log.Warn("rate limit store failed, allowing request",
						logger.String("command", req.Command),
						logger.Error(err),
					)
				}
				allowed = true
			}

			if !allowed {
				if log != nil {
					log.Warn("rate limit exceeded",
						logger.String("command", req.Command),
						logger.Int64("user_id", req.UserID),
					)
				}
				_ = req.Reply(ctx, rateLimitedReply)
				return nil, nil
			}

			return next(ctx, req)
		}
	}
}

// MemoryRateLimitStore keeps per-key timestamp lists in memory.
type MemoryRateLimitStore struct {
	entries map[string][]time.Time
	mu      sync.Mutex
	now     func() time.Time
}

// NewMemoryRateLimitStore creates an empty in-memory store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryRateLimitStore) Take(_ context.Context, key string, window time.Duration, max int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.entries[key][:0]
	for _, ts := range s.entries[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	s.entries[key] = kept

	if len(kept) >= max {
		return false, nil
	}

	s.entries[key] = append(kept, now)
	return true, nil
}
