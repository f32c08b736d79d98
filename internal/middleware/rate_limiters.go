package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterInfo holds a rate limiter and the last time its client was seen.
type limiterInfo struct {
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSeen time.Time
}

func (l *limiterInfo) touch(now time.Time) {
	l.mu.Lock()
	l.lastSeen = now
	l.mu.Unlock()
}

func (l *limiterInfo) idleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastSeen)
}

// RateLimitByIP applies a token bucket of rps requests per second (burst rps)
// to each client IP. Limiters idle for longer than expiration are dropped
// every cleanupInterval until ctx is done.
func RateLimitByIP(ctx context.Context, rps int, cleanupInterval, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				limiters.Range(func(key, value interface{}) bool {
					if value.(*limiterInfo).idleSince(now) > expiration {
						limiters.Delete(key)
					}
					return true
				})
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		actual, _ := limiters.LoadOrStore(ip, &limiterInfo{
			limiter:  rate.NewLimiter(rate.Limit(rps), rps),
			lastSeen: time.Now(),
		})

		info := actual.(*limiterInfo)
		info.touch(time.Now())

		if !info.limiter.Allow() {
			logger.FromGin(c).Warn("rate limit exceeded", zap.String("ip", ip))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
