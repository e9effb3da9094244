package persistence

import (
	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/program"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted entity
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&identity.ConnectionLog{},
		&program.Program{},
		&program.Partner{},
		&audit.SiteTest{},
		&audit.LineTest{},
		&alert.Alert{},
		&alert.Notification{},
		&mailer.EmailTemplate{},
		&mailer.EmailDraft{},
		&mailer.EmailHistory{},
		&mailer.Signature{},
	)
}
