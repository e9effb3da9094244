package handler

import (
	"time"

	identityapp "github.com/blindtest/backend/internal/application/identity"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ConnectionLogHandler exposes the login audit trail. All routes are
// admin-only.
type ConnectionLogHandler struct {
	BaseHandler
	connectionLogService *identityapp.ConnectionLogService
}

// NewConnectionLogHandler creates a new ConnectionLogHandler
func NewConnectionLogHandler(connectionLogService *identityapp.ConnectionLogService) *ConnectionLogHandler {
	return &ConnectionLogHandler{connectionLogService: connectionLogService}
}

// RegisterRoutes registers connection log routes
func (h *ConnectionLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/connection-logs")
	logs.Use(middleware.RequireRoles(string(identity.RoleAdmin)))
	{
		logs.GET("", h.List)
		logs.DELETE("", h.Purge)
	}
}

// List retrieves connection log entries with pagination
func (h *ConnectionLogHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(req)
	if role := c.Query("role"); role != "" {
		filter.Filters = map[string]interface{}{"role": role}
	}

	logs, total, err := h.connectionLogService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, logs, total, filter.Page, filter.PageSize)
}

// Purge deletes entries recorded before the given date
func (h *ConnectionLogHandler) Purge(c *gin.Context) {
	before, err := time.Parse("2006-01-02", c.Query("before_date"))
	if err != nil {
		h.BadRequest(c, "before_date must be a date in YYYY-MM-DD format")
		return
	}

	deleted, err := h.connectionLogService.Purge(c.Request.Context(), before)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}
