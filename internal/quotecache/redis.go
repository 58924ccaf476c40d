package quotecache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis server, for sharing quote results
// across app instances. Entries expire after TTL so stale program data
// ages out on its own.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedis connects a cache to the given Redis address.
func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ttl:    ttl,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}
