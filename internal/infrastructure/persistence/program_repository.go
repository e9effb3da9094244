package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProgramRepository implements ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GORM program repository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// FindByID finds a program by its ID
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	var p program.Program
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all programs matching the filter
func (r *GormProgramRepository) FindAll(ctx context.Context, filter shared.Filter) ([]program.Program, error) {
	var programs []program.Program
	query := r.applyFilter(r.db.WithContext(ctx).Model(&program.Program{}), filter)

	if err := query.Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// FindByIDs finds multiple programs by their IDs
func (r *GormProgramRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]program.Program, error) {
	if len(ids) == 0 {
		return []program.Program{}, nil
	}

	var programs []program.Program
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

// Save creates or updates a program
func (r *GormProgramRepository) Save(ctx context.Context, p *program.Program) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete deletes a program
func (r *GormProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&program.Program{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts programs matching the filter
func (r *GormProgramRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&program.Program{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to a query
func (r *GormProgramRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("name ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, ProgramSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProgramRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormProgramRepository implements ProgramRepository
var _ program.ProgramRepository = (*GormProgramRepository)(nil)
