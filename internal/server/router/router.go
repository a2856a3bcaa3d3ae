package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/auth"
	"github.com/sbdiallo/stockboard/internal/server/handlers"
)

// New wires the Gin engine for the inventory API with required routes and
// middlewares.
func New(items *handlers.ItemsHandler, stats *handlers.StatsHandler, authHandler *handlers.AuthHandler, jwt *auth.JWTManager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ZapLoggerMiddleware(logger))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	protected := api.Group("", auth.Middleware(jwt))

	itemsGroup := protected.Group("/items")
	itemsGroup.GET("/", items.List)
	itemsGroup.POST("/", items.Create)
	itemsGroup.GET("/:id", items.Get)
	itemsGroup.PUT("/:id", items.Update)
	itemsGroup.DELETE("/:id", items.Delete)

	protected.GET("/stats/", stats.Get)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// ZapLoggerMiddleware logs one structured line per completed request.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
