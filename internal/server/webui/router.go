package webui

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/server/router"
)

// NewRouter wires the Gin engine for the dashboard server.
func NewRouter(handler *DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(router.ZapLoggerMiddleware(logger))

	r.POST("/login", handler.Login)
	r.POST("/logout", handler.Logout)

	r.GET("/", handler.Show)
	r.POST("/tabs/:tab", handler.SelectTab)

	r.POST("/items/new", handler.AddItem)
	r.POST("/items/search", handler.Search)
	r.POST("/items/category", handler.FilterCategory)
	r.POST("/items/page/next", handler.NextPage)
	r.POST("/items/page/prev", handler.PrevPage)
	r.POST("/items/:id/edit", handler.EditItem)
	r.POST("/items/:id/delete", handler.DeleteItem)

	r.POST("/form", handler.SubmitForm)
	r.POST("/form/cancel", handler.CancelForm)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("dashboard router initialized")
	}

	return r
}
