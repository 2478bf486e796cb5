package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config caps requests per client IP within a fixed window.
type Config struct {
	Max    int
	Window time.Duration
}

type RateLimiter struct {
	client *redis.Client
	cfg    Config
	log    *zap.Logger
}

func NewRateLimiter(client *redis.Client, cfg Config, log *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, log: log}
}

// Handler counts requests per client IP. Redis being down fails open:
// membership traffic is served unthrottled rather than refused, and the
// outage is logged once per request at warn level.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ip := c.ClientIP()
		key := "rate_limit:" + ip

		// INCR and EXPIRE travel in one pipeline so the counter can never
		// be left without a TTL. ExpireNX keeps the original window instead
		// of sliding it on every hit.
		pipe := rl.client.TxPipeline()
		count := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rl.cfg.Window)
		if _, err := pipe.Exec(ctx); err != nil {
			rl.log.Warn("rate limiter unavailable, serving unthrottled",
				zap.Error(err),
				zap.String("client_ip", ip))
			c.Next()
			return
		}

		if count.Val() > int64(rl.cfg.Max) {
			retryAfter := rl.cfg.Window
			if ttl, err := rl.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			rl.log.Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.Int64("count", count.Val()),
				zap.Int("limit", rl.cfg.Max))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", retryAfter.Seconds()),
			})
			return
		}
		c.Next()
	}
}
