package handler

import (
	mailerapp "github.com/blindtest/backend/internal/application/mailer"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SignatureHandler handles email signature endpoints
type SignatureHandler struct {
	BaseHandler
	signatureService *mailerapp.SignatureService
}

// NewSignatureHandler creates a new SignatureHandler
func NewSignatureHandler(signatureService *mailerapp.SignatureService) *SignatureHandler {
	return &SignatureHandler{signatureService: signatureService}
}

// RegisterRoutes registers signature routes
func (h *SignatureHandler) RegisterRoutes(rg *gin.RouterGroup) {
	signatures := rg.Group("/signatures")
	{
		signatures.GET("", h.List)
		signatures.GET("/:id", h.GetByID)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		signatures.POST("", write, h.Create)
		signatures.PUT("/:id", write, h.Update)
		signatures.DELETE("/:id", write, h.Delete)
	}
}

// Create creates a signature
func (h *SignatureHandler) Create(c *gin.Context) {
	var req mailerapp.SignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.signatureService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves signatures
func (h *SignatureHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	signatures, err := h.signatureService.List(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, signatures)
}

// GetByID retrieves a signature by ID
func (h *SignatureHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid signature ID")
		return
	}

	resp, err := h.signatureService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update updates a signature
func (h *SignatureHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid signature ID")
		return
	}

	var req mailerapp.SignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.signatureService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a signature
func (h *SignatureHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid signature ID")
		return
	}

	if err := h.signatureService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
