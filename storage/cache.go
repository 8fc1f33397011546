package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a JSON key-value cache backed by redis. It holds generated
// review summaries so repeated runs skip regeneration.
type RedisCache struct {
	c   *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to addr. ttlSec of 0 means entries never expire.
func NewRedisCache(addr, pass string, db, ttlSec int) *RedisCache {
	return &RedisCache{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: time.Duration(ttlSec) * time.Second,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(v, dst)
}

func (r *RedisCache) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, key, b, r.ttl).Err()
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}

func (r *RedisCache) Close() error {
	return r.c.Close()
}
