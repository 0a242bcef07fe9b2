package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter keeps sliding-window counters on Redis so several instances
// share one budget. Each hit is a single INCR, so concurrent requests from
// any instance are counted exactly once.
type RedisCounter struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisCounter connects to redisURL and checks the connection.
func NewRedisCounter(redisURL string) (*RedisCounter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisCounterWithClient(client), nil
}

func NewRedisCounterWithClient(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client, prefix: "ratelimit:", now: time.Now}
}

func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCounter) Close() error {
	return c.client.Close()
}

// Hit records one request against key and returns the weighted count of the
// current and previous windows, including this request, plus the time left
// in the current window.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	now := c.now().UnixNano()
	bucket := now / int64(window)
	elapsed := time.Duration(now % int64(window))

	current := c.prefix + key + ":" + strconv.FormatInt(bucket, 10)
	previous := c.prefix + key + ":" + strconv.FormatInt(bucket-1, 10)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, current)
	pipe.Expire(ctx, current, 2*window)
	prev := pipe.Get(ctx, previous)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, fmt.Errorf("redis hit: %w", err)
	}

	prevHits, err := prev.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, 0, fmt.Errorf("redis previous window: %w", err)
	}

	weight := float64(window-elapsed) / float64(window)
	rate := int(float64(prevHits)*weight) + int(incr.Val())
	return rate, window - elapsed, nil
}
