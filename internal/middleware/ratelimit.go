package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel/internal/pkg/response"
)

const (
	limiterIdleTTL = 10 * time.Minute
	sweepInterval  = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		rl.sweep(now)
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle visitors. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, k)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
