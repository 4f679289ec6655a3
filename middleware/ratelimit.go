package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers over their budget with 429. Limiter errors let
// the request through.
func RateLimit(scope string, limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Printf("rate limiter error key=%s err=%v", key, err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Success: false,
				Message: "Too many requests",
				Error:   models.ErrClassRateLimited,
			})
			return
		}
		c.Next()
	}
}

const pruneEvery = 256

// MemoryLimiter is a per-key token bucket. Every pruneEvery calls it drops
// buckets that have refilled completely.
type MemoryLimiter struct {
	mu         sync.Mutex
	rate       float64
	burst      float64
	bucket     map[string]*bucket
	calls      int
	pruneEvery int
	now        func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

func NewMemoryLimiter(perMinute, burst int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &MemoryLimiter{
		rate:       float64(perMinute) / 60.0,
		burst:      float64(burst),
		bucket:     make(map[string]*bucket),
		pruneEvery: pruneEvery,
		now:        time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%l.pruneEvery == 0 {
		l.prune(now)
	}

	b, ok := l.bucket[key]
	if !ok {
		l.bucket[key] = &bucket{tokens: l.burst - 1, last: now}
		return true, nil
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(l.burst, b.tokens+elapsed*l.rate)
	b.last = now
	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

func (l *MemoryLimiter) prune(now time.Time) {
	for key, b := range l.bucket {
		if b.tokens+now.Sub(b.last).Seconds()*l.rate >= l.burst {
			delete(l.bucket, key)
		}
	}
}

// RedisLimiter counts requests per key in fixed one-minute windows shared
// by every instance pointing at the same Redis.
type RedisLimiter struct {
	client    *redis.Client
	perMinute int64
	now       func() time.Time
}

func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &RedisLimiter{client: client, perMinute: int64(perMinute), now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().Unix() / 60
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.perMinute, nil
}
