// Package ratelimit throttles public search traffic per client key.
package ratelimit

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key is allowed now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by every instance that
// points at the same Redis.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window, prefix: "ratelimit:search", now: time.Now}
}

func (l *RedisLimiter) redisKey(key string, now time.Time) string {
	bucket := now.UnixNano() / int64(l.window)
	return l.prefix + ":" + key + ":" + strconv.FormatInt(bucket, 10)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.redisKey(key, l.now())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= l.limit, nil
}

// LocalLimiter keeps one token bucket per key in process memory.
type LocalLimiter struct {
	mu      sync.Mutex
	perSec  rate.Limit
	burst   int
	buckets map[string]*localBucket
	idleTTL time.Duration
	lastGC  time.Time
}

type localBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

func NewLocalLimiter(perMinute, burst int) *LocalLimiter {
	return &LocalLimiter{
		perSec:  rate.Limit(float64(perMinute) / 60),
		burst:   burst,
		buckets: make(map[string]*localBucket),
		idleTTL: 10 * time.Minute,
		lastGC:  time.Now(),
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > l.idleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.idleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastGC = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.perSec, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.limiter.AllowN(now, 1), nil
}
