package handler

import (
	alertapp "github.com/blindtest/backend/internal/application/alert"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AlertHandler handles compliance alert endpoints
type AlertHandler struct {
	BaseHandler
	alertService *alertapp.Service
	userRepo     identity.UserRepository
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *alertapp.Service, userRepo identity.UserRepository) *AlertHandler {
	return &AlertHandler{alertService: alertService, userRepo: userRepo}
}

// RegisterRoutes registers alert routes
func (h *AlertHandler) RegisterRoutes(rg *gin.RouterGroup) {
	alerts := rg.Group("/alerts")
	{
		alerts.GET("", h.List)
		alerts.GET("/:id", h.GetByID)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		alerts.POST("", write, h.Create)
		alerts.POST("/:id/resolve", write, h.Resolve)
		alerts.DELETE("/:id", write, h.Delete)
	}
}

// Create raises a standalone alert
func (h *AlertHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req alertapp.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.CreatorID = userID

	resp, err := h.alertService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves alerts visible to the caller, optionally by status
func (h *AlertHandler) List(c *gin.Context) {
	actor, err := loadActor(c, h.userRepo)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	status := c.Query("status")
	if status != "" && status != "open" && status != "resolved" {
		h.BadRequest(c, "Status must be open or resolved")
		return
	}

	filter := toFilter(req)
	alerts, total, err := h.alertService.ListForUser(c.Request.Context(), actor, status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, alerts, total, filter.Page, filter.PageSize)
}

// GetByID retrieves an alert by ID
func (h *AlertHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	resp, err := h.alertService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Resolve marks an alert resolved
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	resp, err := h.alertService.Resolve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete permanently removes a resolved alert
func (h *AlertHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	if err := h.alertService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
