package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
)

// StatsHandler exposes the aggregate inventory report.
type StatsHandler struct {
	repo   mongodb.ItemRepository
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(repo mongodb.ItemRepository, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{repo: repo, logger: logger}
}

// Get handles GET /api/stats/.
func (h *StatsHandler) Get(c *gin.Context) {
	report, err := h.repo.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
