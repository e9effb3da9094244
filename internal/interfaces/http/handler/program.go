package handler

import (
	programapp "github.com/blindtest/backend/internal/application/program"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/interfaces/http/dto"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProgramHandler handles affiliate program endpoints
type ProgramHandler struct {
	BaseHandler
	programService *programapp.ProgramService
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(programService *programapp.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// RegisterRoutes registers program routes. Reads are open to every
// authenticated role; writes require admin or agent.
func (h *ProgramHandler) RegisterRoutes(rg *gin.RouterGroup) {
	programs := rg.Group("/programs")
	{
		programs.GET("", h.List)
		programs.GET("/:id", h.GetByID)

		write := middleware.RequireRoles(string(identity.RoleAdmin), string(identity.RoleAgent))
		programs.POST("", write, h.Create)
		programs.PUT("/:id", write, h.Update)
		programs.DELETE("/:id", write, h.Delete)
	}
}

// Create creates a program
func (h *ProgramHandler) Create(c *gin.Context) {
	var req programapp.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.programService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List retrieves programs with pagination
func (h *ProgramHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter := toFilter(req)
	programs, total, err := h.programService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, programs, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a program by ID
func (h *ProgramHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	resp, err := h.programService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update updates a program
func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var req programapp.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.programService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete permanently removes a program
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	if err := h.programService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
