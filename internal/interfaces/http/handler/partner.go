package handler

import (
	programapp "github.com/blindtest/backend/internal/application/program"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles partner endpoints
type PartnerHandler struct {
	BaseHandler
	partnerService *programapp.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partnerService *programapp.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partners := rg.Group("/partners")
	{
		partners.GET("", h.List)
		partners.GET("/:id", h.GetByID)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		partners.POST("", write, h.Create)
		partners.PUT("/:id", write, h.Update)
		partners.DELETE("/:id", write, h.Delete)
	}
}

// Create creates a partner
func (h *PartnerHandler) Create(c *gin.Context) {
	var req programapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.partnerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves partners, optionally narrowed to one program
func (h *PartnerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	programID := uuid.Nil
	if raw := c.Query("program_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid program ID")
			return
		}
		programID = id
	}

	filter := toFilter(req)
	partners, total, err := h.partnerService.List(c.Request.Context(), programID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, partners, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a partner by ID
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	resp, err := h.partnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update updates a partner
func (h *PartnerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	var req programapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.partnerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete permanently removes a partner
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid partner ID")
		return
	}

	if err := h.partnerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
