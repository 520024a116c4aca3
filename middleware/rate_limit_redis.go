package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// sortedSetClient is the slice of the Redis API the store actually uses.
// redis.UniversalClient satisfies it; tests substitute an in-memory double.
type sortedSetClient interface {
	ZRemRangeByScore(ctx context.Context, key, min, max string) *redis.IntCmd
	ZCard(ctx context.Context, key string) *redis.IntCmd
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisRateLimitStore keeps sliding-window state in a Redis sorted set
// scored by nanosecond timestamps, so several bot instances can share one
// window.
type RedisRateLimitStore struct {
	client sortedSetClient
	prefix string
	now    func() time.Time
}

// NewRedisRateLimitStore creates a store using the given client. Keys are
// namespaced under prefix; pass "" for the default "relay:ratelimit".
func NewRedisRateLimitStore(client redis.UniversalClient, prefix string) *RedisRateLimitStore {
	if prefix == "" {
		prefix = "relay:ratelimit"
	}
	return &RedisRateLimitStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *RedisRateLimitStore) Take(ctx context.Context, key string, window time.Duration, max int) (bool, error) {
	redisKey := s.prefix + ":" + key
	now := s.now()
	cutoff := now.Add(-window).UnixNano()

	if err := s.client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return false, err
	}

	count, err := s.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count >= int64(max) {
		return false, nil
	}

	if err := s.client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	}).Err(); err != nil {
		return false, err
	}

	// Stale keys expire on their own once the window has passed
	if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
		return false, err
	}

	return true, nil
}
