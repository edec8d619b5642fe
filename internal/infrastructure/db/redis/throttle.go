package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// SignInThrottle counts failed sign-in attempts per email in Redis.
// Key format: signin_fail:<lowercased email>, expiring after the window.
// The caller fails open on Redis errors; an unavailable throttle store must
// never lock out legitimate sign-ins.
type SignInThrottle struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewSignInThrottle creates a SignInThrottle wrapping the given Redis client.
func NewSignInThrottle(client *redis.Client, maxFailures int, window time.Duration) *SignInThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SignInThrottle{client: client, max: int64(maxFailures), window: window}
}

// Allow reports whether the email is still under the failure limit.
func (t *SignInThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.max, nil
}

// RecordFailure increments the failure counter; the window starts at the
// first failure.
func (t *SignInThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *SignInThrottle) key(email string) string {
	return "signin_fail:" + strings.ToLower(email)
}
