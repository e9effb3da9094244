package mailer

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SendOutcome records whether a send attempt reached the SMTP relay
type SendOutcome string

const (
	SendOutcomeSuccess SendOutcome = "success"
	SendOutcomeFailed  SendOutcome = "failed"
)

// EmailHistory is the append-only audit trail of send attempts, one row per
// attempt, successful or not.
type EmailHistory struct {
	shared.BaseEntity
	AlertID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	DraftID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Recipient    string      `gorm:"type:varchar(200);not null"`
	Subject      string      `gorm:"type:varchar(500);not null"`
	Body         string      `gorm:"type:text;not null"`
	Outcome      SendOutcome `gorm:"type:varchar(20);not null"`
	ErrorMessage string      `gorm:"type:text"`
	SentAt       time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmailHistory) TableName() string {
	return "email_history"
}

// NewEmailHistory records one send attempt
func NewEmailHistory(d *EmailDraft, outcome SendOutcome, errorMessage string) *EmailHistory {
	return &EmailHistory{
		BaseEntity:   shared.NewBaseEntity(),
		AlertID:      d.AlertID,
		DraftID:      d.ID,
		Recipient:    d.Recipient,
		Subject:      d.Subject,
		Body:         d.Body,
		Outcome:      outcome,
		ErrorMessage: errorMessage,
		SentAt:       time.Now(),
	}
}
