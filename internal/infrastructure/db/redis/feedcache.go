package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openwave/social-platform/internal/api/metrics"
	"github.com/openwave/social-platform/internal/core/ports"
)

const (
	publicFeedKey = "feed:public"
	publicFeedTTL = 30 * time.Second
)

// FeedCache caches the assembled public feed in Redis. The public feed is the
// same for every viewer, so one key with a short TTL is enough; every post
// mutation invalidates it.
type FeedCache struct {
	client *redis.Client
}

// NewFeedCache creates a FeedCache wrapping the given Redis client.
func NewFeedCache(client *redis.Client) *FeedCache {
	return &FeedCache{client: client}
}

func (c *FeedCache) GetPublicFeed(ctx context.Context) ([]ports.PostView, bool, error) {
	raw, err := c.client.Get(ctx, publicFeedKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}

	var views []ports.PostView
	if err := json.Unmarshal(raw, &views); err != nil {
		// A corrupt entry behaves like a miss; the next write replaces it.
		metrics.FeedCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.FeedCacheTotal.WithLabelValues("hit").Inc()
	return views, true, nil
}

func (c *FeedCache) SetPublicFeed(ctx context.Context, posts []ports.PostView) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("feed cache marshal: %w", err)
	}
	return c.client.Set(ctx, publicFeedKey, raw, publicFeedTTL).Err()
}

func (c *FeedCache) InvalidatePublicFeed(ctx context.Context) error {
	return c.client.Del(ctx, publicFeedKey).Err()
}
