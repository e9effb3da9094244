package identity

import (
	"time"

	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// LoginRequest represents a login attempt. ClientIP and UserAgent are filled
// by the handler from the request, never from the payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`

	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse carries the token pair issued on successful login
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse carries the rotated token pair
type RefreshResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordRequest represents a password change by the user themselves
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// =============================================================================
// Connection log DTOs
// =============================================================================

// ConnectionLogResponse represents one entry of the login audit trail
type ConnectionLogResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
}

// ToConnectionLogResponse converts a domain entry to a response DTO
func ToConnectionLogResponse(l *identity.ConnectionLog) ConnectionLogResponse {
	return ConnectionLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Email:     l.Email,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Role:      string(l.Role),
		IPAddress: l.IPAddress,
		UserAgent: l.UserAgent,
		LoginAt:   l.LoginAt,
	}
}

// ToConnectionLogResponses converts a list of entries
func ToConnectionLogResponses(logs []identity.ConnectionLog) []ConnectionLogResponse {
	responses := make([]ConnectionLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToConnectionLogResponse(&logs[i])
	}
	return responses
}

// =============================================================================
// User DTOs
// =============================================================================

// CreateUserRequest represents a request to create a user account
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role      string      `json:"role" binding:"required,oneof=admin agent program_viewer partner_viewer project_lead"`
	ProgramID *uuid.UUID  `json:"program_id"`
	PartnerID *uuid.UUID  `json:"partner_id"`
	Programs  []uuid.UUID `json:"programs"`
}

// UpdateUserRequest represents a request to update a user account
type UpdateUserRequest struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Role      string      `json:"role" binding:"required,oneof=admin agent program_viewer partner_viewer project_lead"`
	ProgramID *uuid.UUID  `json:"program_id"`
	PartnerID *uuid.UUID  `json:"partner_id"`
	Programs  []uuid.UUID `json:"programs"`
}

// ResetPasswordRequest represents an administrative password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UserResponse represents a user in API responses. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	FullName  string      `json:"full_name"`
	Role      string      `json:"role"`
	Active    bool        `json:"active"`
	ProgramID *uuid.UUID  `json:"program_id,omitempty"`
	PartnerID *uuid.UUID  `json:"partner_id,omitempty"`
	Programs  []uuid.UUID `json:"programs,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Role:      string(u.Role),
		Active:    u.Active,
		ProgramID: u.ProgramID,
		PartnerID: u.PartnerID,
		Programs:  u.ProgramIDs,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a list of users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
