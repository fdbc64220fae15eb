package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfoliohub:ratelimit:"

// Redis shares counters across API replicas. The window starts with the first
// request from a client and is enforced through the key's TTL.
type Redis struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb, now: time.Now}
}

func (r *Redis) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := keyPrefix + key

	n, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit incr: %w", err)
	}

	if n == 1 {
		if err := r.rdb.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit expire: %w", err)
		}
		return 1, r.now().Add(window), nil
	}

	ttl, err := r.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit ttl: %w", err)
	}

	// a key without expiry would never reset
	if ttl < 0 {
		if err := r.rdb.PExpire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("ratelimit expire: %w", err)
		}
		ttl = window
	}

	return int(n), r.now().Add(ttl), nil
}
