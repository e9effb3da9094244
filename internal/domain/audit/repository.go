package audit

import (
	"context"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TestQuery narrows test listings. Zero values mean no constraint.
type TestQuery struct {
	ProgramID uuid.UUID
	PartnerID uuid.UUID
	From      time.Time
	To        time.Time
}

// SiteTestRepository defines the interface for site test persistence
type SiteTestRepository interface {
	// FindByID finds a site test by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SiteTest, error)

	// FindAll finds site tests matching the query
	FindAll(ctx context.Context, query TestQuery, filter shared.Filter) ([]SiteTest, error)

	// Save creates or updates a site test
	Save(ctx context.Context, t *SiteTest) error

	// Delete deletes a site test
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts site tests matching the query
	Count(ctx context.Context, query TestQuery) (int64, error)

	// CountDiscountApplied counts site tests where the discount was applied
	CountDiscountApplied(ctx context.Context) (int64, error)
}

// LineTestRepository defines the interface for line test persistence
type LineTestRepository interface {
	// FindByID finds a line test by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LineTest, error)

	// FindAll finds line tests matching the query
	FindAll(ctx context.Context, query TestQuery, filter shared.Filter) ([]LineTest, error)

	// Save creates or updates a line test
	Save(ctx context.Context, t *LineTest) error

	// Delete deletes a line test
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts line tests matching the query
	Count(ctx context.Context, query TestQuery) (int64, error)

	// CountOfferApplied counts line tests where the offer was honored
	CountOfferApplied(ctx context.Context) (int64, error)
}
