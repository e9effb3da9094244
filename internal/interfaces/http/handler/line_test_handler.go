package handler

import (
	auditapp "github.com/blindtest/backend/internal/application/audit"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// LineTestHandler handles phone line blind test endpoints
type LineTestHandler struct {
	BaseHandler
	lineTestService *auditapp.LineTestService
	userRepo        identity.UserRepository
}

// NewLineTestHandler creates a new LineTestHandler
func NewLineTestHandler(lineTestService *auditapp.LineTestService, userRepo identity.UserRepository) *LineTestHandler {
	return &LineTestHandler{lineTestService: lineTestService, userRepo: userRepo}
}

// RegisterRoutes registers line test routes
func (h *LineTestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tests := rg.Group("/tests/line")
	{
		tests.GET("", h.List)
		tests.GET("/:id", h.GetByID)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		tests.POST("", write, h.Create)
		tests.DELETE("/:id", write, h.Delete)
	}
}

// Create records a line test and raises alerts for any compliance finding
func (h *LineTestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req auditapp.CreateLineTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.CreatorID = userID

	resp, err := h.lineTestService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves line tests visible to the caller
func (h *LineTestHandler) List(c *gin.Context) {
	actor, err := loadActor(c, h.userRepo)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	var query auditapp.ListTestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(listReq)
	tests, total, err := h.lineTestService.ListForUser(c.Request.Context(), actor, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tests, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a line test by ID
func (h *LineTestHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}

	resp, err := h.lineTestService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete permanently removes a line test
func (h *LineTestHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}

	if err := h.lineTestService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
