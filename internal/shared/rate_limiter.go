package shared

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// RateLimitConfig is a fixed-window limit for one route.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimiter keeps per-client fixed windows in a go-cache store.
type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitConfig
	metrics *AppMetrics
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func DefaultRateLimits() map[string]RateLimitConfig {
	return map[string]RateLimitConfig{
		"POST /signup": {Requests: 5, Window: time.Minute},
		"POST /login":  {Requests: 10, Window: time.Minute},
		"GET /tattoos": {Requests: 100, Window: time.Minute},
		"default":      {Requests: 60, Window: time.Minute},
	}
}

func NewRateLimiter(config map[string]RateLimitConfig, metrics *AppMetrics) *RateLimiter {
	if config == nil {
		config = DefaultRateLimits()
	}

	return &RateLimiter{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		config:  config,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		config, ok := rl.config[methodPath]

		if !ok {
			config, ok = rl.config["default"]

			if !ok {
				c.Next()
				return
			}
		}

		key := fmt.Sprintf("ratelimit:%s:%s", methodPath, GetClientIP(c))
		now := time.Now()

		entry := rateLimitEntry{Count: 0, ResetTime: now.Add(config.Window)}

		if cached, found := rl.cache.Get(key); found {
			entry = cached.(rateLimitEntry)

			if now.After(entry.ResetTime) {
				entry = rateLimitEntry{Count: 0, ResetTime: now.Add(config.Window)}
			}
		}

		entry.Count++
		rl.cache.Set(key, entry, time.Until(entry.ResetTime))

		remaining := config.Requests - entry.Count

		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(entry.ResetTime.Unix(), 10))

		if entry.Count > config.Requests {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(path)
			}

			log.Warn().Str("path", methodPath).Str("client", GetClientIP(c)).Msg("Rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"errors": []string{"Too many requests"},
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(path)
		}

		c.Next()
	}
}

// GetClientIP extracts the client address, honoring proxy headers first.
func GetClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	ip := c.ClientIP()

	if ip == "" {
		return "unknown"
	}

	return ip
}
