package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
)

func TestNewResponseCache(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	cache := NewResponseCache(nil, metrics)

	Expect(cache).ToNot(BeNil())
	Expect(cache.config).To(HaveKey("/tattoos"))
	Expect(cache.config).To(HaveKey("/users"))

	tattoosConfig := cache.config["/tattoos"]
	Expect(tattoosConfig.TTL).To(Equal(3 * time.Second))
	Expect(tattoosConfig.Enabled).To(BeTrue())
}

func TestResponseCacheMiddleware_MissThenHit(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	cache := NewResponseCache(nil, metrics)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cache.Middleware())

	callCount := 0
	router.GET("/tattoos", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"count": callCount})
	})

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/tattoos", nil)
	router.ServeHTTP(w1, req1)

	Expect(w1.Code).To(Equal(200))
	Expect(callCount).To(Equal(1))
	Expect(w1.Header().Get("X-Cache")).To(Equal("MISS"))

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/tattoos", nil)
	router.ServeHTTP(w2, req2)

	Expect(w2.Code).To(Equal(200))
	Expect(callCount).To(Equal(1))
	Expect(w2.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(w2.Body.String()).To(Equal(w1.Body.String()))
}

func TestResponseCacheMiddleware_DistinctQueriesAreDistinctEntries(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	cache := NewResponseCache(nil, metrics)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cache.Middleware())

	callCount := 0
	router.GET("/tattoos", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"count": callCount})
	})

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/tattoos", nil)
	router.ServeHTTP(w1, req1)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/tattoos?style=irezumi", nil)
	router.ServeHTTP(w2, req2)

	Expect(callCount).To(Equal(2))
	Expect(w2.Header().Get("X-Cache")).To(Equal("MISS"))
}

func TestResponseCacheMiddleware_SkipsUnlistedRoutes(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	cache := NewResponseCache(nil, metrics)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cache.Middleware())

	callCount := 0
	router.GET("/healthz", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"status": "ok"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/healthz", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-Cache")).To(BeEmpty())
	}

	Expect(callCount).To(Equal(2))
}

func TestResponseCacheMiddleware_ErrorResponsesAreNotCached(t *testing.T) {
	RegisterTestingT(t)

	metrics := NewAppMetrics(prometheus.NewRegistry())
	cache := NewResponseCache(nil, metrics)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(cache.Middleware())

	callCount := 0
	router.GET("/tattoos", func(c *gin.Context) {
		callCount++
		c.JSON(503, gin.H{"error": "unavailable"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tattoos", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(503))
	}

	Expect(callCount).To(Equal(2))
}
