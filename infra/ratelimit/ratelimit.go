package ratelimit

import (
	"net/http"
	"time"

	"flowdesk/misc"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// NewAPIRateLimit is the general per-IP ceiling: 100 requests per 15 minutes.
func NewAPIRateLimit() gin.HandlerFunc {
	return NewIPRateLimit(rate.Every(15*time.Minute/100), 100,
		"Too many requests from this IP, please try again later.")
}

// NewCreationRateLimit guards resource-creation endpoints: 10 per minute per IP.
func NewCreationRateLimit() gin.HandlerFunc {
	return NewIPRateLimit(rate.Every(time.Minute/10), 10,
		"Too many resources created, please slow down.")
}

// NewAuthRateLimit guards authentication endpoints: 5 failed attempts per
// 15 minutes per IP, successful requests are not counted.
func NewAuthRateLimit() gin.HandlerFunc {
	return NewWindowRateLimit(5, 15*time.Minute,
		"Too many login attempts, please try again after 15 minutes.")
}

// NewIPRateLimit keeps a token bucket per client IP. Buckets idle beyond
// their refill horizon are evicted by the underlying cache.
func NewIPRateLimit(limit rate.Limit, burst int, message string) gin.HandlerFunc {
	limiters := cache.New(30*time.Minute, 5*time.Minute)
	return func(c *gin.Context) {
		key := c.ClientIP()
		var limiter *rate.Limiter
		if v, found := limiters.Get(key); found {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(limit, burst)
			limiters.SetDefault(key, limiter)
		}
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, misc.Failure(message))
			c.Abort()
			return
		}
		c.Next()
	}
}

// NewWindowRateLimit counts requests per client IP within a fixed window
// starting at the first request; responses below 400 refund their slot.
func NewWindowRateLimit(max int, window time.Duration, message string) gin.HandlerFunc {
	counters := cache.New(window, time.Minute)
	return func(c *gin.Context) {
		key := c.ClientIP()
		_ = counters.Add(key, 0, cache.DefaultExpiration)
		n, err := counters.IncrementInt(key, 1)
		if err == nil && n > max {
			c.JSON(http.StatusTooManyRequests, misc.Failure(message))
			c.Abort()
			return
		}
		c.Next()
		if c.Writer.Status() < http.StatusBadRequest {
			_, _ = counters.DecrementInt(key, 1)
		}
	}
}
