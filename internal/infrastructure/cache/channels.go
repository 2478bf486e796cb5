package cache

import (
	"context"
	"encoding/json"
	"time"

	"channelhub/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelListKey = "channels:all"

// ChannelCache keeps the channel listing in redis. It is best effort: any
// redis failure degrades to a database read, never to a request failure.
type ChannelCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewChannelCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ChannelCache {
	return &ChannelCache{client: client, ttl: ttl, log: log}
}

func (c *ChannelCache) Get(ctx context.Context) ([]domain.ChannelProjection, bool) {
	val, err := c.client.Get(ctx, channelListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("channel cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var channels []domain.ChannelProjection
	if err := json.Unmarshal(val, &channels); err != nil {
		c.log.Warn("channel cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return channels, true
}

func (c *ChannelCache) Set(ctx context.Context, channels []domain.ChannelProjection) {
	payload, err := json.Marshal(channels)
	if err != nil {
		c.log.Warn("channel cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, channelListKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn("channel cache write failed", zap.Error(err))
	}
}

func (c *ChannelCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, channelListKey).Err(); err != nil {
		c.log.Warn("channel cache invalidate failed", zap.Error(err))
	}
}
