package program

import (
	"context"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProgramRepository defines the interface for program persistence
type ProgramRepository interface {
	// FindByID finds a program by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Program, error)

	// FindAll finds all programs matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Program, error)

	// FindByIDs finds multiple programs by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Program, error)

	// Save creates or updates a program
	Save(ctx context.Context, p *Program) error

	// Delete deletes a program
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts programs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByID finds a partner by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)

	// FindAll finds all partners matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Partner, error)

	// FindByProgram finds partners associated to the given program
	FindByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) ([]Partner, error)

	// Save creates or updates a partner
	Save(ctx context.Context, p *Partner) error

	// Delete deletes a partner
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts partners matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
