package program

import (
	"regexp"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Association links a partner to one program it distributes, with the
// coordinates used to run blind tests against it.
type Association struct {
	ProgramID        uuid.UUID `json:"program_id"`
	SiteURL          string    `json:"site_url"`
	PromoCode        string    `json:"promo_code"`
	PhoneNumber      string    `json:"phone_number"`
	RefererURL       string    `json:"referer_url"`
	SiteTestRequired bool      `json:"site_test_required"`
	LineTestRequired bool      `json:"line_test_required"`
}

// Partner represents a company whose promotional offers are audited.
// Its program associations determine which test types are due each month.
type Partner struct {
	shared.BaseEntity
	Name             string           `gorm:"type:varchar(200);not null;index"`
	Associations     []Association    `gorm:"type:text;serializer:json"`
	ExpectedDiscount *decimal.Decimal `gorm:"type:decimal(5,2)"` // Minimum discount in percent, nil when not contractual
	ExpectedNaming   string           `gorm:"type:varchar(200)"`
	LogoURL          string           `gorm:"type:varchar(500)"`
	ContactEmail     string           `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner with required fields
func NewPartner(name string) (*Partner, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Partner{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Associations: []Association{},
	}, nil
}

// Update updates the partner's basic information
func (p *Partner) Update(name, expectedNaming, logoURL string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	if expectedNaming != "" && len(expectedNaming) > 200 {
		return shared.NewDomainError("INVALID_NAMING", "Expected naming cannot exceed 200 characters")
	}

	p.Name = name
	p.ExpectedNaming = expectedNaming
	p.LogoURL = logoURL
	p.UpdatedAt = time.Now()

	return nil
}

// SetContactEmail sets the address alerts are drafted to.
// An empty value clears the contact, which disables draft generation.
func (p *Partner) SetContactEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	p.ContactEmail = email
	p.UpdatedAt = time.Now()

	return nil
}

// SetExpectedDiscount sets the contractual minimum discount in percent
func (p *Partner) SetExpectedDiscount(threshold *decimal.Decimal) error {
	if threshold != nil {
		if threshold.IsNegative() {
			return shared.NewDomainError("INVALID_THRESHOLD", "Expected discount cannot be negative")
		}
		if threshold.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_THRESHOLD", "Expected discount cannot exceed 100 percent")
		}
	}

	p.ExpectedDiscount = threshold
	p.UpdatedAt = time.Now()

	return nil
}

// SetAssociations replaces the partner's program associations
func (p *Partner) SetAssociations(associations []Association) error {
	for _, a := range associations {
		if a.ProgramID == uuid.Nil {
			return shared.NewDomainError("INVALID_ASSOCIATION", "Association requires a program id")
		}
	}

	if associations == nil {
		associations = []Association{}
	}
	p.Associations = associations
	p.UpdatedAt = time.Now()

	return nil
}

// HasProgram returns true if the partner is associated to the given program
func (p *Partner) HasProgram(programID uuid.UUID) bool {
	for _, a := range p.Associations {
		if a.ProgramID == programID {
			return true
		}
	}
	return false
}

// HasContactEmail returns true if a draft recipient is known for this partner
func (p *Partner) HasContactEmail() bool {
	return p.ContactEmail != ""
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
