package program

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
)

// Program represents a promotional program audited by the agency.
// Partners are associated to programs; every test and alert references one.
type Program struct {
	shared.BaseEntity
	Name             string `gorm:"type:varchar(200);not null;index"`
	Description      string `gorm:"type:text"`
	PlatformURL      string `gorm:"type:varchar(500)"` // Back-office URL of the program platform
	PlatformLogin    string `gorm:"type:varchar(200)"`
	PlatformPassword string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Program) TableName() string {
	return "programs"
}

// NewProgram creates a new program with required fields
func NewProgram(name, description string) (*Program, error) {
	if err := validateProgramName(name); err != nil {
		return nil, err
	}

	return &Program{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Update updates the program's basic information
func (p *Program) Update(name, description string) error {
	if err := validateProgramName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()

	return nil
}

// SetPlatformAccess sets the credentials used to reach the program's platform
func (p *Program) SetPlatformAccess(url, login, password string) error {
	if url != "" && len(url) > 500 {
		return shared.NewDomainError("INVALID_URL", "Platform URL cannot exceed 500 characters")
	}

	p.PlatformURL = url
	p.PlatformLogin = login
	p.PlatformPassword = password
	p.UpdatedAt = time.Now()

	return nil
}

func validateProgramName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Program name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Program name cannot exceed 200 characters")
	}
	return nil
}
