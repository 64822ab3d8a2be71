package shared

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// ResponseCacheConfig is the per-route cache policy.
type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache is a short-TTL body cache for idempotent GET routes.
type ResponseCache struct {
	cache   *cache.Cache
	config  map[string]ResponseCacheConfig
	metrics *AppMetrics
}

type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func DefaultCachePolicies() map[string]ResponseCacheConfig {
	return map[string]ResponseCacheConfig{
		"/tattoos": {TTL: 3 * time.Second, Enabled: true},
		"/users":   {TTL: 3 * time.Second, Enabled: true},
	}
}

func NewResponseCache(config map[string]ResponseCacheConfig, metrics *AppMetrics) *ResponseCache {
	if config == nil {
		config = DefaultCachePolicies()
	}

	return &ResponseCache{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		config:  config,
		metrics: metrics,
	}
}

type bodyCapture struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		config, ok := rc.config[path]

		if !ok || !config.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("response:%x", md5.Sum([]byte(c.Request.URL.RequestURI())))

		if cached, found := rc.cache.Get(key); found {
			response := cached.(cachedResponse)

			if rc.metrics != nil {
				rc.metrics.RecordCacheHit(path)
			}

			c.Header("X-Cache", "HIT")
			c.Data(response.StatusCode, response.ContentType, response.Body)
			c.Abort()
			return
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(path)
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture
		c.Header("X-Cache", "MISS")

		c.Next()

		if capture.Status() == http.StatusOK {
			rc.cache.Set(key, cachedResponse{
				StatusCode:  capture.Status(),
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.buf.Bytes(),
			}, config.TTL)
		}
	}
}
