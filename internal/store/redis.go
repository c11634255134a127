package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the redis handle backing the rate limiter and health probe.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis. Timeouts come from configuration and are kept
// short so a slow redis degrades requests instead of stalling them.
func NewRedis(addr string, dialTimeout, opTimeout time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}
