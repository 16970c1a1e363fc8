package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds rate limiter tuning parameters.
type Config struct {
	EnableIPThrottle bool
	MaxGenerates     int
	Cooldown         time.Duration
}

// Limiter enforces a per-IP budget on challenge generation using Redis
// counters. Verification is never throttled here; attempt accounting on the
// record itself covers it.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a rate [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// CheckGenerate checks whether the IP is within the generation budget.
// Returns an error if rate-limited.
func (l *Limiter) CheckGenerate(ctx context.Context, ip string) error {
	if !l.config.EnableIPThrottle || ip == "" {
		return nil
	}
	return l.checkCounter(ctx, generateIPKey(ip), l.config.MaxGenerates)
}

// IncrementGenerate records one generation for the IP.
func (l *Limiter) IncrementGenerate(ctx context.Context, ip string) error {
	if !l.config.EnableIPThrottle || ip == "" {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, generateIPKey(ip), l.config.Cooldown)
	if err != nil {
		return err
	}
	if count > int64(l.config.MaxGenerates) {
		return ErrRateLimited
	}
	return nil
}

// ResetGenerate clears the generation counter for the IP.
func (l *Limiter) ResetGenerate(ctx context.Context, ip string) error {
	if ip == "" {
		return nil
	}
	if err := l.redis.Del(ctx, generateIPKey(ip)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (l *Limiter) checkCounter(ctx context.Context, key string, maxAttempts int) error {
	count, err := l.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if count > int64(maxAttempts) {
		return ErrRateLimited
	}
	return nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}

func generateIPKey(ip string) string {
	return "cgi:" + ip
}
