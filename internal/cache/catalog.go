package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flower-storefront/internal/client"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const catalogPrefix = "products:"

// CatalogCache holds storefront product pages. Misses and cache errors both
// fall through to the backend.
type CatalogCache interface {
	Get(ctx context.Context, category string, page int) (*client.ProductPage, bool)
	Set(ctx context.Context, category string, page int, products *client.ProductPage)
	Invalidate(ctx context.Context)
}

func catalogKey(category string, page int) string {
	return fmt.Sprintf("%s%s:%d", catalogPrefix, category, page)
}

type redisCatalog struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewCatalogCache returns a Redis-backed cache, or a no-op cache when rdb is
// nil.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration, logger *log.Logger) CatalogCache {
	if rdb == nil {
		return noopCatalog{}
	}
	return &redisCatalog{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *redisCatalog) Get(ctx context.Context, category string, page int) (*client.ProductPage, bool) {
	data, err := c.rdb.Get(ctx, catalogKey(category, page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnf("catalog cache get: %v", err)
		}
		return nil, false
	}
	var products client.ProductPage
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return &products, true
}

func (c *redisCatalog) Set(ctx context.Context, category string, page int, products *client.ProductPage) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey(category, page), data, c.ttl).Err(); err != nil {
		c.logger.Warnf("catalog cache set: %v", err)
	}
}

func (c *redisCatalog) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, catalogPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnf("catalog cache scan: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("catalog cache invalidate: %v", err)
	}
}

type noopCatalog struct{}

func (noopCatalog) Get(context.Context, string, int) (*client.ProductPage, bool) { return nil, false }
func (noopCatalog) Set(context.Context, string, int, *client.ProductPage)         {}
func (noopCatalog) Invalidate(context.Context)                                    {}
