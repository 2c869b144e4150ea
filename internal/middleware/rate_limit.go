// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP and forgets buckets that
// have been idle long enough to refill completely.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int, idle time.Duration) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		idle:    idle,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > l.idle {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// The marketplace surface has three pressure points: the ledger and read API
// (cheap, serialized behind one lock), token minting (bcrypt per attempt),
// and document uploads (S3 round trips). Each gets its own budget.
var (
	generalLimiter  = newIPLimiter(rate.Every(100*time.Millisecond), 20, 3*time.Minute) // 10 req/s, burst 20
	tokenLimiter    = newIPLimiter(rate.Every(12*time.Second), 5, 10*time.Minute)       // 5 mints/min
	documentLimiter = newIPLimiter(rate.Every(20*time.Second), 3, 10*time.Minute)       // 3 uploads/min
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware()
}

func TokenRateLimit() gin.HandlerFunc {
	return tokenLimiter.middleware()
}

func DocumentRateLimit() gin.HandlerFunc {
	return documentLimiter.middleware()
}
