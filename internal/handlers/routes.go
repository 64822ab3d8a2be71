package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	. "inkfolio/pkg/auth"

	s "inkfolio/internal/shared"
)

type HandlersConfig struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	TattooHandler *TattooHandler
}

func SetupRouter(handlers HandlersConfig, metrics *s.AppMetrics, registry *prometheus.Registry, config *s.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(s.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(s.NewHTTPSEnforcer(config.EnforceHTTPS).Middleware())
	router.Use(s.MetricsMiddleware(metrics))

	if config.RateLimitEnabled {
		router.Use(s.NewRateLimiter(nil, metrics).Middleware())
	}

	if config.CacheEnabled {
		router.Use(s.NewResponseCache(nil, metrics).Middleware())
	}

	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers)

	return router
}

func setupPublicRoutes(router *gin.Engine, handlers HandlersConfig) {
	public := router.Group("/")
	{
		if handlers.AuthHandler != nil {
			public.POST("/signup", handlers.AuthHandler.Signup)
			public.POST("/login", handlers.AuthHandler.Login)
		}

		if handlers.UserHandler != nil {
			public.GET("/users", handlers.UserHandler.GetAllUsers)
			public.GET("/users/:id", handlers.UserHandler.GetUser)
		}

		if handlers.TattooHandler != nil {
			public.GET("/tattoos", handlers.TattooHandler.GetAllTattoos)
			public.GET("/tattoos/:id", handlers.TattooHandler.GetTattoo)
		}
	}
}

func setupProtectedRoutes(router *gin.Engine, handlers HandlersConfig) {
	protected := router.Group("/")
	protected.Use(GinJwtMiddleware())
	{
		if handlers.TattooHandler != nil {
			protected.POST("/users/:id/tattoos", handlers.TattooHandler.CreateTattoo)
			protected.PUT("/users/:id/tattoos/:tattooId", handlers.TattooHandler.UpdateTattoo)
			protected.DELETE("/users/:id/tattoos/:tattooId", handlers.TattooHandler.DeleteTattoo)
		}

		if handlers.UserHandler != nil {
			protected.POST("/users/:id/favorites", handlers.UserHandler.AddFavorite)
			protected.DELETE("/users/:id/favorites/:tattooId", handlers.UserHandler.RemoveFavorite)
			protected.DELETE("/users/:id", handlers.UserHandler.DeleteUser)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests wires the routes with no metrics, rate limiting, or
// caching in the way.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupPublicRoutes(router, handlers)
	setupProtectedRoutes(router, handlers)

	return router
}
