package client

import (
	"context"
	"fmt"
	"time"

	"flower-storefront/internal/config"

	"github.com/redis/go-redis/v9"
)

// InitRedisClient connects to Redis for the product catalog cache. It returns
// nil, nil when no address is configured.
func InitRedisClient(ctx context.Context, redisCfg *config.Redis) (*redis.Client, error) {
	if redisCfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", redisCfg.Addr, err)
	}

	return rdb, nil
}
