package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP. Entries idle for longer
// than ttl are evicted so the map does not grow unbounded.
type RateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*ipLimiter
	rate  rate.Limit
	burst int
	ttl   time.Duration
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a per-IP rate limiter allowing r events per second
// with the given burst.
func NewRateLimiter(r rate.Limit, b int, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ips:   make(map[string]*ipLimiter),
		rate:  r,
		burst: b,
		ttl:   ttl,
	}
	go rl.cleanup()
	return rl
}

// GetLimiter returns the limiter for the given IP, creating one on first use.
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.ips[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(rl.ttl)
		rl.mu.Lock()
		for ip, entry := range rl.ips {
			if time.Since(entry.lastSeen) > rl.ttl {
				delete(rl.ips, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// LoginRateLimit throttles credential attempts per client IP. Brute
// forcing the owner login is the only endpoint worth protecting this way;
// storefront routes stay unthrottled.
func LoginRateLimit() gin.HandlerFunc {
	limiter := NewRateLimiter(rate.Every(6*time.Second), 5, 10*time.Minute)

	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
