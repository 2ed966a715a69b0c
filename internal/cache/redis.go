// Package cache keeps rendered views (dashboard, listings) in Redis.
//
// The cache degrades gracefully: without an address, or when Redis is
// unreachable at startup, every lookup misses and every write is dropped.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"fiduciary-books/internal/core"
)

const keyPrefix = "view:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Cache implements core.ViewRefresher. The zero value is a disabled cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

var _ core.ViewRefresher = (*Cache)(nil)

// New connects to Redis. Connection failures are logged and yield a disabled
// cache rather than an error.
func New(ctx context.Context, opts Options, logger *log.Logger) *Cache {
	c := &Cache{ttl: opts.TTL, logger: logger}
	if opts.Addr == "" {
		return c
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		c.warn("redis unavailable, view cache disabled", "addr", opts.Addr, "err", err)
		return c
	}
	c.client = client
	return c
}

// Disabled returns a cache that never stores anything.
func Disabled() *Cache {
	return &Cache{}
}

// Enabled reports whether a Redis connection is in use.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key returns the Redis key for one variant of a view, e.g. view:bills:2024|q=|status=.
func Key(view core.View, variant string) string {
	return keyPrefix + string(view) + ":" + variant
}

// GetJSON decodes the cached variant into dst and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, view core.View, variant string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.client.Get(ctx, Key(view, variant)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.warn("cache get failed", "view", view, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.warn("cache entry corrupt", "view", view, "err", err)
		return false
	}
	return true
}

// SetJSON stores v under the variant with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, view core.View, variant string, v any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.warn("cache encode failed", "view", view, "err", err)
		return
	}
	if err := c.client.Set(ctx, Key(view, variant), data, c.ttl).Err(); err != nil {
		c.warn("cache set failed", "view", view, "err", err)
	}
}

// Refresh drops every cached variant of the given views. Failures are logged
// and never reach the caller.
func (c *Cache) Refresh(ctx context.Context, views ...core.View) {
	if !c.Enabled() {
		return
	}
	for _, v := range views {
		if err := c.dropView(ctx, v); err != nil {
			c.warn("cache refresh failed", "view", v, "err", err)
		}
	}
}

func (c *Cache) dropView(ctx context.Context, view core.View) error {
	iter := c.client.Scan(ctx, 0, Key(view, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", view, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection, if any.
func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) warn(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, keyvals...)
	}
}
