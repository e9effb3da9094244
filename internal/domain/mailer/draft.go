package mailer

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DraftStatus represents the lifecycle state of a draft
type DraftStatus string

const (
	DraftStatusDraft DraftStatus = "draft"
	DraftStatusSent  DraftStatus = "sent"
)

// EmailDraft is an editable, not-yet-sent email addressed to a partner about
// an alert. Composed automatically when an alert opens, or created by hand.
type EmailDraft struct {
	shared.BaseEntity
	AlertID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	TemplateID *uuid.UUID  `gorm:"type:uuid"`
	Subject    string      `gorm:"type:varchar(500);not null"`
	Body       string      `gorm:"type:text;not null"`
	Recipient  string      `gorm:"type:varchar(200);not null"`
	Status     DraftStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	SentAt     *time.Time
}

// TableName returns the table name for GORM
func (EmailDraft) TableName() string {
	return "email_drafts"
}

// NewEmailDraft creates a draft pending review
func NewEmailDraft(alertID uuid.UUID, templateID *uuid.UUID, subject, body, recipient string) (*EmailDraft, error) {
	if alertID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALERT", "Draft requires an alert id")
	}
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Draft requires a recipient address")
	}

	return &EmailDraft{
		BaseEntity: shared.NewBaseEntity(),
		AlertID:    alertID,
		TemplateID: templateID,
		Subject:    subject,
		Body:       body,
		Recipient:  recipient,
		Status:     DraftStatusDraft,
	}, nil
}

// Edit replaces the draft's reviewed content. Sent drafts are immutable.
func (d *EmailDraft) Edit(subject, body, recipient string) error {
	if d.Status == DraftStatusSent {
		return shared.NewDomainError("INVALID_STATE", "A sent draft cannot be edited")
	}
	if recipient == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Draft requires a recipient address")
	}

	d.Subject = subject
	d.Body = body
	d.Recipient = recipient
	d.UpdatedAt = time.Now()

	return nil
}

// MarkSent transitions the draft to sent. Sending twice is rejected so a
// partner never receives the same alert email again by accident.
func (d *EmailDraft) MarkSent() error {
	if d.Status == DraftStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Draft has already been sent")
	}

	now := time.Now()
	d.Status = DraftStatusSent
	d.SentAt = &now
	d.UpdatedAt = now

	return nil
}

// IsSent returns true once the draft has gone out
func (d *EmailDraft) IsSent() bool {
	return d.Status == DraftStatusSent
}
