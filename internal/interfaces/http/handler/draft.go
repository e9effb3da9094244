package handler

import (
	mailerapp "github.com/blindtest/backend/internal/application/mailer"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DraftHandler handles email draft and send history endpoints
type DraftHandler struct {
	BaseHandler
	draftService *mailerapp.DraftService
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(draftService *mailerapp.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// RegisterRoutes registers draft and history routes
func (h *DraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))

	drafts := rg.Group("/drafts")
	{
		drafts.GET("", h.List)
		drafts.GET("/:id", h.GetByID)
		drafts.PUT("/:id", write, h.Update)
		drafts.POST("/:id/send", write, h.Send)
		drafts.DELETE("/:id", write, h.Delete)
	}

	history := rg.Group("/email-history")
	{
		history.GET("", h.History)
	}

	alerts := rg.Group("/alerts/:id")
	{
		alerts.GET("/drafts", h.ListByAlert)
		alerts.GET("/email-history", h.HistoryByAlert)
	}
}

// List retrieves drafts
func (h *DraftHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	drafts, err := h.draftService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, drafts)
}

// GetByID retrieves a draft by ID
func (h *DraftHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	resp, err := h.draftService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListByAlert retrieves the drafts composed for an alert
func (h *DraftHandler) ListByAlert(c *gin.Context) {
	alertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	drafts, err := h.draftService.ListByAlert(c.Request.Context(), alertID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, drafts)
}

// Update edits a draft before sending
func (h *DraftHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	var req mailerapp.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.draftService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Send delivers the draft over SMTP and resolves the owning alert
func (h *DraftHandler) Send(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	// The body is optional; an empty POST sends without a signature
	var req mailerapp.SendDraftRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	resp, err := h.draftService.Send(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete deletes an unsent draft
func (h *DraftHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// History retrieves send attempts, newest first
func (h *DraftHandler) History(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(req)
	if outcome := c.Query("outcome"); outcome != "" {
		filter.Filters = map[string]interface{}{"outcome": outcome}
	}

	rows, err := h.draftService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// HistoryByAlert retrieves send attempts for one alert
func (h *DraftHandler) HistoryByAlert(c *gin.Context) {
	alertID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID")
		return
	}

	rows, err := h.draftService.HistoryByAlert(c.Request.Context(), alertID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
