package alert

import (
	"time"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/google/uuid"
)

// =============================================================================
// Alert DTOs
// =============================================================================

// CreateAlertRequest represents a request to raise an alert. TestID is nil
// for standalone alerts recording that a test could not be performed.
type CreateAlertRequest struct {
	TestID      *uuid.UUID `json:"test_id"`
	TestType    string     `json:"test_type" binding:"required,oneof=site line"`
	Description string     `json:"description" binding:"required"`
	ProgramID   uuid.UUID  `json:"program_id" binding:"required"`
	PartnerID   uuid.UUID  `json:"partner_id" binding:"required"`
	CreatorID   uuid.UUID  `json:"-"` // Set from JWT context, not from request body
}

// AlertResponse represents an alert in API responses
type AlertResponse struct {
	ID          uuid.UUID  `json:"id"`
	TestID      *uuid.UUID `json:"test_id"`
	TestType    string     `json:"test_type"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ProgramID   uuid.UUID  `json:"program_id"`
	PartnerID   uuid.UUID  `json:"partner_id"`
	CreatorID   uuid.UUID  `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// ToAlertResponse converts a domain alert to a response DTO
func ToAlertResponse(a *alert.Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		TestID:      a.TestID,
		TestType:    string(a.TestType),
		Description: a.Description,
		Status:      string(a.Status),
		ProgramID:   a.ProgramID,
		PartnerID:   a.PartnerID,
		CreatorID:   a.CreatorID,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
	}
}

// ToAlertResponses converts a list of alerts
func ToAlertResponses(alerts []alert.Alert) []AlertResponse {
	responses := make([]AlertResponse, len(alerts))
	for i := range alerts {
		responses[i] = ToAlertResponse(&alerts[i])
	}
	return responses
}

// =============================================================================
// Notification DTOs
// =============================================================================

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	AlertID     uuid.UUID `json:"alert_id"`
	ProgramID   uuid.UUID `json:"program_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToNotificationResponse converts a domain notification to a response DTO
func ToNotificationResponse(n *alert.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		AlertID:     n.AlertID,
		ProgramID:   n.ProgramID,
		PartnerID:   n.PartnerID,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

// ToNotificationResponses converts a list of notifications
func ToNotificationResponses(notifications []alert.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses
}
