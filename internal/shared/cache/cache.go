package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured indica REDIS_ADDR vazio; o cache é opcional
var ErrNotConfigured = errors.New("redis addr not configured")

func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrNotConfigured
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}
