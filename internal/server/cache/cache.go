// Package cache provides read-through caching of JSON-serialisable views.
// A cache failure is never fatal: misses and write errors only cost a trip
// to the database.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/gameauth/internal/logging"
	goredis "github.com/redis/go-redis/v9"
)

// Cache stores values of type T by key.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (*T, bool)
	Set(ctx context.Context, key string, value *T)
}

// ViewCache is a Redis-backed Cache. Values are stored as JSON with a fixed
// TTL; a zero TTL keeps keys until evicted.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	logger logging.Logger
}

func NewViewCache[T any](client *goredis.Client, ttl time.Duration, logger logging.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl, logger: logger.With("module", "view_cache")}
}

// Get returns (nil, false) on a miss, a Redis error or undecodable data.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn(ctx, "cache entry undecodable", "key", key, "error", err)
		return nil, false
	}
	return &v, true
}

func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Nop is a Cache that never stores anything.
type Nop[T any] struct{}

func (Nop[T]) Get(context.Context, string) (*T, bool) { return nil, false }
func (Nop[T]) Set(context.Context, string, *T)        {}
