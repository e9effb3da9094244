package handler

import (
	auditapp "github.com/blindtest/backend/internal/application/audit"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SiteTestHandler handles web site blind test endpoints
type SiteTestHandler struct {
	BaseHandler
	siteTestService *auditapp.SiteTestService
	userRepo        identity.UserRepository
}

// NewSiteTestHandler creates a new SiteTestHandler
func NewSiteTestHandler(siteTestService *auditapp.SiteTestService, userRepo identity.UserRepository) *SiteTestHandler {
	return &SiteTestHandler{siteTestService: siteTestService, userRepo: userRepo}
}

// RegisterRoutes registers site test routes
func (h *SiteTestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tests := rg.Group("/tests/site")
	{
		tests.GET("", h.List)
		tests.GET("/:id", h.GetByID)
		tests.GET("/:id/attachments/:attachmentID/download", h.AttachmentDownloadURL)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		tests.POST("", write, h.Create)
		tests.DELETE("/:id", write, h.Delete)
		tests.POST("/:id/attachments", write, h.InitiateAttachment)
	}
}

// loadActor fetches the authenticated user for scope decisions
func loadActor(c *gin.Context, userRepo identity.UserRepository) (*identity.User, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	return userRepo.FindByID(c.Request.Context(), userID)
}

// Create records a site test and raises alerts for any compliance finding
func (h *SiteTestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req auditapp.CreateSiteTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.CreatorID = userID

	resp, err := h.siteTestService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves site tests visible to the caller
func (h *SiteTestHandler) List(c *gin.Context) {
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
	tests, total, err := h.siteTestService.ListForUser(c.Request.Context(), actor, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tests, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a site test by ID
func (h *SiteTestHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}

	resp, err := h.siteTestService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete permanently removes a site test and its attachments
func (h *SiteTestHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}

	if err := h.siteTestService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// InitiateAttachment registers an attachment and returns a presigned upload URL
func (h *SiteTestHandler) InitiateAttachment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}

	var req auditapp.InitiateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.siteTestService.InitiateAttachment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// AttachmentDownloadURL returns a presigned download URL for an attachment
func (h *SiteTestHandler) AttachmentDownloadURL(c *gin.Context) {
	testID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid test ID")
		return
	}
	attachmentID, err := parseIDParam(c, "attachmentID")
	if err != nil {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	resp, err := h.siteTestService.AttachmentDownloadURL(c.Request.Context(), testID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
