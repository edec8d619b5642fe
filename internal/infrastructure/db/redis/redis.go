package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config captures the connection settings plus the sign-in throttle limits
// this store exists to serve.
type Config struct {
	Addr           string
	DB             int
	Timeout        time.Duration
	ThrottleMax    int
	ThrottleWindow time.Duration
}

// Connect initialises the Redis client backing the sign-in throttle, validates
// connectivity with a ping, and returns the throttle configured with the
// limits from cfg. The raw client is also returned for readiness probes.
func Connect(ctx context.Context, cfg Config) (*redis.Client, *SignInThrottle, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, NewSignInThrottle(client, cfg.ThrottleMax, cfg.ThrottleWindow), nil
}
