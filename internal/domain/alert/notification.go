package alert

import (
	"fmt"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// notificationExcerptLen bounds how much of the alert description is carried
// into the notification message.
const notificationExcerptLen = 100

// Notification is an in-app message telling a project lead that an alert
// opened on one of their programs.
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	AlertID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProgramID   uuid.UUID `gorm:"type:uuid;not null"`
	PartnerID   uuid.UUID `gorm:"type:uuid;not null"`
	Message     string    `gorm:"type:varchar(500);not null"`
	Read        bool      `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for one recipient
func NewNotification(recipientID uuid.UUID, a *Alert, programName, partnerName string) *Notification {
	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		AlertID:     a.ID,
		ProgramID:   a.ProgramID,
		PartnerID:   a.PartnerID,
		Message:     ComposeMessage(programName, partnerName, a.Description),
		Read:        false,
	}
}

// ComposeMessage builds the notification text from the alert context,
// truncating the description to its first 100 characters.
func ComposeMessage(programName, partnerName, description string) string {
	excerpt := description
	if runes := []rune(excerpt); len(runes) > notificationExcerptLen {
		excerpt = string(runes[:notificationExcerptLen])
	}
	return fmt.Sprintf("[%s] - %s : %s", programName, partnerName, excerpt)
}

// MarkRead flips the read flag. Only explicit user action calls this.
func (n *Notification) MarkRead() {
	n.Read = true
	n.UpdatedAt = time.Now()
}
