package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusCacheKey = "settings:statuses"
	statusCacheTTL = 10 * time.Minute
)

// StatusCache is a read-through redis cache for the status configuration.
// The config is read on every board render, so it is the one hot document
// worth caching; writes invalidate the key before the event fan-out runs.
type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

// Get returns the cached config and true on a hit. Redis errors are
// treated as misses so the database stays the source of truth.
func (c *StatusCache) Get(ctx context.Context) ([]StatusConfig, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statusCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var config []StatusConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, false
	}
	return config, true
}

func (c *StatusCache) Set(ctx context.Context, config []StatusConfig) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return
	}
	c.client.Set(ctx, statusCacheKey, raw, statusCacheTTL)
}

func (c *StatusCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, statusCacheKey)
}
