package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// windowStart is aligned to a whole minute so tests start at elapsed zero.
var windowStart = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestCounter(t *testing.T, mr *miniredis.Miniredis) *RedisCounter {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	counter := NewRedisCounterWithClient(client)
	counter.now = func() time.Time { return windowStart }
	return counter
}

func TestNewRedisCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	counter, err := NewRedisCounter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer counter.Close()

	assert.NoError(t, counter.Ping(context.Background()))
}

func TestNewRedisCounter_BadURL(t *testing.T) {
	_, err := NewRedisCounter("not a url")
	assert.Error(t, err)
}

func TestRedisCounter_Hit(t *testing.T) {
	mr := miniredis.RunT(t)
	counter := newTestCounter(t, mr)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		rate, resetIn, err := counter.Hit(ctx, "ai:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, rate)
		assert.Equal(t, time.Minute, resetIn)
	}

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "ratelimit:ai:1.2.3.4:")
	assert.Equal(t, 2*time.Minute, mr.TTL(keys[0]))
}

func TestRedisCounter_PreviousWindowWeighted(t *testing.T) {
	mr := miniredis.RunT(t)
	counter := newTestCounter(t, mr)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, _, err := counter.Hit(ctx, "ai:1.2.3.4", time.Minute)
		require.NoError(t, err)
	}

	// Halfway through the next window half of the previous hits still count.
	counter.now = func() time.Time { return windowStart.Add(90 * time.Second) }
	rate, resetIn, err := counter.Hit(ctx, "ai:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 6, rate)
	assert.Equal(t, 30*time.Second, resetIn)

	// Two windows later nothing carries over.
	counter.now = func() time.Time { return windowStart.Add(3 * time.Minute) }
	rate, _, err = counter.Hit(ctx, "ai:1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, rate)
}

func TestRedisCounter_ConcurrentInstancesNeverOvershoot(t *testing.T) {
	mr := miniredis.RunT(t)
	counters := []*RedisCounter{newTestCounter(t, mr), newTestCounter(t, mr)}
	const limit = 20

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(counter *RedisCounter) {
			defer wg.Done()
			rate, _, err := counter.Hit(context.Background(), "ai:10.0.0.1", time.Minute)
			assert.NoError(t, err)
			if rate <= limit {
				allowed.Add(1)
			}
		}(counters[i%2])
	}
	wg.Wait()

	assert.Equal(t, int32(limit), allowed.Load())
}
