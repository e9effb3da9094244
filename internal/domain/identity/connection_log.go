package identity

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User agents can get arbitrarily long; keep a readable prefix only
const maxUserAgentLength = 500

// ConnectionLog is one entry of the login audit trail. The user's identity is
// snapshotted into the entry so the trail stays readable after the account is
// renamed or deleted.
type ConnectionLog struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:varchar(200);not null"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Role      Role      `gorm:"type:varchar(20);not null"`
	IPAddress string    `gorm:"type:varchar(45)"`
	UserAgent string    `gorm:"type:varchar(500)"`
	LoginAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ConnectionLog) TableName() string {
	return "connection_logs"
}

// NewConnectionLog records a successful login for the given user
func NewConnectionLog(u *User, ipAddress, userAgent string) *ConnectionLog {
	if len(userAgent) > maxUserAgentLength {
		userAgent = userAgent[:maxUserAgentLength]
	}
	return &ConnectionLog{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		LoginAt:    time.Now(),
	}
}
