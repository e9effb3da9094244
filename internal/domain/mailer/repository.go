package mailer

import (
	"context"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TemplateRepository defines the interface for email template persistence
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error)

	// FindAll finds all templates
	FindAll(ctx context.Context, filter shared.Filter) ([]EmailTemplate, error)

	// FindDefault finds the default template, shared.ErrNotFound when none exists
	FindDefault(ctx context.Context) (*EmailTemplate, error)

	// Save creates or updates a template. Saving a template with IsDefault
	// set unsets the flag on every other template.
	Save(ctx context.Context, t *EmailTemplate) error

	// Delete deletes a template
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts templates
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DraftRepository defines the interface for email draft persistence
type DraftRepository interface {
	// FindByID finds a draft by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*EmailDraft, error)

	// FindAll finds drafts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]EmailDraft, error)

	// FindByAlert finds drafts composed for the given alert
	FindByAlert(ctx context.Context, alertID uuid.UUID) ([]EmailDraft, error)

	// Save creates or updates a draft
	Save(ctx context.Context, d *EmailDraft) error

	// Delete deletes a draft
	Delete(ctx context.Context, id uuid.UUID) error
}

// HistoryRepository defines the interface for the send attempt audit trail
type HistoryRepository interface {
	// FindAll finds history rows matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]EmailHistory, error)

	// FindByAlert finds history rows for the given alert
	FindByAlert(ctx context.Context, alertID uuid.UUID) ([]EmailHistory, error)

	// Save appends a history row
	Save(ctx context.Context, h *EmailHistory) error
}

// SignatureRepository defines the interface for signature persistence
type SignatureRepository interface {
	// FindByID finds a signature by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Signature, error)

	// FindAll finds all signatures
	FindAll(ctx context.Context, filter shared.Filter) ([]Signature, error)

	// Save creates or updates a signature
	Save(ctx context.Context, s *Signature) error

	// Delete deletes a signature
	Delete(ctx context.Context, id uuid.UUID) error
}
