package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents what a user may see and do
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleAgent         Role = "agent"
	RoleProgramViewer Role = "program_viewer" // Read-only, scoped to one program
	RolePartnerViewer Role = "partner_viewer" // Read-only, scoped to one partner
	RoleProjectLead   Role = "project_lead"   // Notified for alerts on their programs
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account of the back office
type User struct {
	shared.BaseEntity
	Email        string      `gorm:"type:varchar(200);not null;uniqueIndex"`
	FirstName    string      `gorm:"type:varchar(100)"`
	LastName     string      `gorm:"type:varchar(100)"`
	Role         Role        `gorm:"type:varchar(20);not null;index"`
	Active       bool        `gorm:"not null;default:true"`
	ProgramID    *uuid.UUID  `gorm:"type:uuid"` // Scope of a program viewer
	PartnerID    *uuid.UUID  `gorm:"type:uuid"` // Scope of a partner viewer
	ProgramIDs   []uuid.UUID `gorm:"type:text;serializer:json"` // Programs a project lead covers
	PasswordHash string      `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(email, firstName, lastName, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Active:       true,
		ProgramIDs:   make([]uuid.UUID, 0),
		PasswordHash: passwordHash,
	}, nil
}

// Update updates the user's profile
func (u *User) Update(firstName, lastName string, role Role) error {
	if err := validateRole(role); err != nil {
		return err
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.Role = role
	u.UpdatedAt = time.Now()

	return nil
}

// SetScope sets the single program or partner a viewer role is restricted to
func (u *User) SetScope(programID, partnerID *uuid.UUID) {
	u.ProgramID = programID
	u.PartnerID = partnerID
	u.UpdatedAt = time.Now()
}

// SetPrograms replaces the program list a project lead covers
func (u *User) SetPrograms(programIDs []uuid.UUID) error {
	for _, id := range programIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_PROGRAM", "Program id cannot be empty")
		}
	}

	seen := make(map[uuid.UUID]bool)
	unique := make([]uuid.UUID, 0, len(programIDs))
	for _, id := range programIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	u.ProgramIDs = unique
	u.UpdatedAt = time.Now()

	return nil
}

// CoversProgram returns true if the user's program list contains the program
func (u *User) CoversProgram(programID uuid.UUID) bool {
	for _, id := range u.ProgramIDs {
		if id == programID {
			return true
		}
	}
	return false
}

// ChangePassword changes the user's password after checking the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate activates the user
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
}

// Deactivate deactivates the user, which also removes them from the
// notification recipient set
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

// IsViewer returns true for the read-only roles
func (u *User) IsViewer() bool {
	return u.Role == RoleProgramViewer || u.Role == RolePartnerViewer
}

// ScopeReady reports whether a viewer role has its scoping id set. Viewers
// without a scope are denied listings rather than shown empty ones.
func (u *User) ScopeReady() bool {
	switch u.Role {
	case RoleProgramViewer:
		return u.ProgramID != nil
	case RolePartnerViewer:
		return u.PartnerID != nil
	default:
		return true
	}
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validation functions

func validateRole(role Role) error {
	switch role {
	case RoleAdmin, RoleAgent, RoleProgramViewer, RolePartnerViewer, RoleProjectLead:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Invalid user role")
	}
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
