package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"agency-hub/internal/pkg/config"
	pkgErrors "agency-hub/pkg/errors"
	"agency-hub/pkg/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter one token bucket per client IP
type ipRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

func newIPRateLimiter(requests int, window time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     requests,
		idle:      2 * window,
		lastSweep: time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	if now.Sub(l.lastSweep) > l.idle {
		l.sweep(now)
	}

	return v.limiter.AllowN(now, 1)
}

// sweep drops buckets idle long enough to be full again; runs at most once per idle interval
func (l *ipRateLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware throttles each client IP to cfg.Requests per cfg.Window seconds
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg.Requests, time.Duration(cfg.Window)*time.Second)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			utils.Error(c, pkgErrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
