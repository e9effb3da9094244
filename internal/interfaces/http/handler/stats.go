package handler

import (
	reportapp "github.com/blindtest/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves the dashboard counters
type StatsHandler struct {
	BaseHandler
	statsService *reportapp.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *reportapp.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/dashboard", h.Dashboard)
}

// Dashboard returns the landing page counters
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
