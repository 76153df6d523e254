package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
)

// Client wraps the Redis connection. It backs two concerns:
// daily-send markers for the notification loop and the sliding-window
// rate limit on the vision ingest route.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Daily send markers ──
//
// The notifier fires at most once per (kind, local date). The marker survives
// process restarts, which the bare minute-debounce of the polling loop does not.

const sentMarkerPrefix = "notify:sent:"

// MarkSent records that a notification kind fired on the given local date.
// Returns false if the marker already existed (someone fired first).
func (c *Client) MarkSent(ctx context.Context, kind, localDate string, ttl time.Duration) (bool, error) {
	key := sentMarkerPrefix + kind + ":" + localDate
	return c.rdb.SetNX(ctx, key, "1", ttl).Result()
}

// ── Sliding-window rate limit ──

// CheckRateLimit allows at most limit calls per window for the given key.
// Fixed-window counter: INCR + EXPIRE on first hit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
