package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	now      func() time.Time
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	mu       sync.Mutex
}

// NewRateLimiter creates a limiter allowing perMinute requests per client,
// with bursts up to burst.
func NewRateLimiter(perMinute float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		now:      time.Now,
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(perMinute / 60),
		burst:    burst,
	}
}

// reserve reports whether the client may proceed, and if not, how long until
// a token is available.
func (rl *RateLimiter) reserve(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastSeen = now

	r := cl.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Prune drops limiters for clients not seen within idle.
func (rl *RateLimiter) Prune(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for ip, cl := range rl.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limiters, ip)
			removed++
		}
	}
	return removed
}

// Run prunes idle clients every interval until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Prune(interval)
		}
	}
}

// RateLimit rejects clients that exceed their budget with 429 and a
// Retry-After header. m may be nil.
func RateLimit(rl *RateLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait := rl.reserve(c.ClientIP())
		if allowed {
			c.Next()
			return
		}

		m.Limited()
		if log := GetLogger(c); log != nil {
			log.Warn("Rate limit exceeded", map[string]interface{}{
				"ip":   c.ClientIP(),
				"path": c.Request.URL.Path,
			})
		}

		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		abortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
	}
}
