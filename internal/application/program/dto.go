package program

import (
	"time"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Program DTOs
// =============================================================================

// CreateProgramRequest represents a request to create a new program
type CreateProgramRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=200"`
	Description      string `json:"description"`
	PlatformURL      string `json:"platform_url" binding:"max=500"`
	PlatformLogin    string `json:"platform_login" binding:"max=200"`
	PlatformPassword string `json:"platform_password" binding:"max=200"`
}

// UpdateProgramRequest represents a request to update a program
type UpdateProgramRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description      *string `json:"description"`
	PlatformURL      *string `json:"platform_url" binding:"omitempty,max=500"`
	PlatformLogin    *string `json:"platform_login" binding:"omitempty,max=200"`
	PlatformPassword *string `json:"platform_password" binding:"omitempty,max=200"`
}

// ProgramResponse represents a program in API responses
type ProgramResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PlatformURL   string    `json:"platform_url"`
	PlatformLogin string    `json:"platform_login"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToProgramResponse converts a domain program to a response DTO.
// The platform password never leaves the backend.
func ToProgramResponse(p *program.Program) ProgramResponse {
	return ProgramResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PlatformURL:   p.PlatformURL,
		PlatformLogin: p.PlatformLogin,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProgramResponses converts a list of programs
func ToProgramResponses(programs []program.Program) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i := range programs {
		responses[i] = ToProgramResponse(&programs[i])
	}
	return responses
}

// =============================================================================
// Partner DTOs
// =============================================================================

// AssociationRequest represents one program association of a partner
type AssociationRequest struct {
	ProgramID        uuid.UUID `json:"program_id" binding:"required"`
	SiteURL          string    `json:"site_url" binding:"max=500"`
	PromoCode        string    `json:"promo_code" binding:"max=100"`
	PhoneNumber      string    `json:"phone_number" binding:"max=50"`
	RefererURL       string    `json:"referer_url" binding:"max=500"`
	SiteTestRequired bool      `json:"site_test_required"`
	LineTestRequired bool      `json:"line_test_required"`
}

// CreatePartnerRequest represents a request to create a new partner
type CreatePartnerRequest struct {
	Name             string               `json:"name" binding:"required,min=1,max=200"`
	Associations     []AssociationRequest `json:"associations" binding:"dive"`
	ExpectedDiscount *decimal.Decimal     `json:"expected_discount"`
	ExpectedNaming   string               `json:"expected_naming" binding:"max=200"`
	LogoURL          string               `json:"logo_url" binding:"max=500"`
	ContactEmail     string               `json:"contact_email" binding:"omitempty,email,max=200"`
}

// UpdatePartnerRequest represents a request to update a partner
type UpdatePartnerRequest struct {
	Name             *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Associations     []AssociationRequest `json:"associations" binding:"dive"`
	ExpectedDiscount *decimal.Decimal     `json:"expected_discount"`
	ExpectedNaming   *string              `json:"expected_naming" binding:"omitempty,max=200"`
	LogoURL          *string              `json:"logo_url" binding:"omitempty,max=500"`
	ContactEmail     *string              `json:"contact_email" binding:"omitempty,max=200"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Associations     []program.Association `json:"associations"`
	ExpectedDiscount *decimal.Decimal      `json:"expected_discount"`
	ExpectedNaming   string                `json:"expected_naming"`
	LogoURL          string                `json:"logo_url"`
	ContactEmail     string                `json:"contact_email"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToPartnerResponse converts a domain partner to a response DTO
func ToPartnerResponse(p *program.Partner) PartnerResponse {
	return PartnerResponse{
		ID:               p.ID,
		Name:             p.Name,
		Associations:     p.Associations,
		ExpectedDiscount: p.ExpectedDiscount,
		ExpectedNaming:   p.ExpectedNaming,
		LogoURL:          p.LogoURL,
		ContactEmail:     p.ContactEmail,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToPartnerResponses converts a list of partners
func ToPartnerResponses(partners []program.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, len(partners))
	for i := range partners {
		responses[i] = ToPartnerResponse(&partners[i])
	}
	return responses
}

func toAssociations(reqs []AssociationRequest) []program.Association {
	associations := make([]program.Association, len(reqs))
	for i, r := range reqs {
		associations[i] = program.Association{
			ProgramID:        r.ProgramID,
			SiteURL:          r.SiteURL,
			PromoCode:        r.PromoCode,
			PhoneNumber:      r.PhoneNumber,
			RefererURL:       r.RefererURL,
			SiteTestRequired: r.SiteTestRequired,
			LineTestRequired: r.LineTestRequired,
		}
	}
	return associations
}
