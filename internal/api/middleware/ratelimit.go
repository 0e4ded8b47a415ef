package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter
}

// Cleanup forgets clients not seen since before.
func (rl *RateLimiter) Cleanup(before time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if v.lastSeen.Before(before) {
			delete(rl.visitors, key)
		}
	}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		now := time.Now()
		limiter := rl.limiter(ctx.ClientIP(), now)

		r := limiter.ReserveN(now, 1)
		if delay := r.DelayFrom(now); delay > 0 {
			r.CancelAt(now)
			ctx.Header("Retry-After", strconv.Itoa(int(delay/time.Second)+1))
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}

// StartCleanup drops clients idle for longer than idle, checking every
// interval, until ctx is done. The returned channel closes once it stopped.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval, idle time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.Cleanup(now.Add(-idle))
			}
		}
	}()

	return done
}

// RateLimit limits every client IP to requestsPerMinute with the given
// burst. Idle clients are dropped periodically until ctx is done.
func RateLimit(ctx context.Context, requestsPerMinute, burst int) gin.HandlerFunc {
	rl := NewRateLimiter(requestsPerMinute, burst)
	rl.StartCleanup(ctx, limiterIdleTTL, limiterIdleTTL)

	return rl.Handler()
}
