package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"linkhub/internal/engine/tracking"
	"linkhub/internal/pkg/errors"
)

// Limiter decides whether one more request under key fits in a per-minute budget.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) (bool, error)
}

type MemoryLimiter struct {
	store *sync.Map // map[string]*bucket
	now   func() time.Time
	stop  chan struct{}
}

type bucket struct {
	mu         sync.Mutex
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	rl := &MemoryLimiter{
		store: &sync.Map{},
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go rl.cleanupLoop(10 * time.Minute)
	return rl
}

func (rl *MemoryLimiter) Close() {
	close(rl.stop)
}

func (rl *MemoryLimiter) cleanupLoop(idle time.Duration) {
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(idle)
		}
	}
}

func (rl *MemoryLimiter) sweep(idle time.Duration) {
	now := rl.now()
	rl.store.Range(func(key, value interface{}) bool {
		b := value.(*bucket)
		b.mu.Lock()
		if now.Sub(b.lastAccess) > idle {
			rl.store.Delete(key)
		}
		b.mu.Unlock()
		return true
	})
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string, limit int) (bool, error) {
	now := rl.now()

	val, _ := rl.store.LoadOrStore(key, &bucket{
		tokens:     limit,
		lastRefill: now,
		lastAccess: now,
	})

	b := val.(*bucket)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastAccess = now

	// refill at limit tokens per minute
	refill := int(now.Sub(b.lastRefill).Seconds() * float64(limit) / 60.0)
	if refill > 0 {
		b.tokens = min(limit, b.tokens+refill)
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// RedisLimiter is a fixed one-minute window shared by every server instance.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string, limit int) (bool, error) {
	k := rl.prefix + ":" + key
	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		rl.client.Expire(ctx, k, time.Minute)
	}
	return n <= int64(limit), nil
}

// RateLimit limits requests per client IP within scope. Limiter errors fail open.
// Forwarding headers are only honoured when trustProxy is set.
func RateLimit(limiter Limiter, scope string, perMinute int, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if perMinute <= 0 {
				next(w, r)
				return
			}

			key := scope + ":" + clientKey(r, trustProxy)
			ok, err := limiter.Allow(r.Context(), key, perMinute)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				ok = true
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(perMinute))
			if !ok {
				w.Header().Set("Retry-After", "60")
				errors.WriteError(w, http.StatusTooManyRequests, errors.MsgRateLimited)
				return
			}

			next(w, r)
		}
	}
}

func clientKey(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := tracking.ClientIP(r); ip != "unknown" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
