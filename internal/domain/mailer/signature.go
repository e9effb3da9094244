package mailer

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
)

// Signature is a block of text appended below the body when a draft is sent
type Signature struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(200);not null"`
	Content string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Signature) TableName() string {
	return "email_signatures"
}

// NewSignature creates a signature
func NewSignature(name, content string) (*Signature, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Signature name cannot be empty")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Signature content cannot be empty")
	}

	return &Signature{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Content:    content,
	}, nil
}

// Update replaces the signature's content
func (s *Signature) Update(name, content string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Signature name cannot be empty")
	}
	if content == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Signature content cannot be empty")
	}

	s.Name = name
	s.Content = content
	s.UpdatedAt = time.Now()

	return nil
}
