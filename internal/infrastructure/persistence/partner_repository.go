package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GORM partner repository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Partner, error) {
	var p program.Partner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all partners matching the filter
func (r *GormPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]program.Partner, error) {
	var partners []program.Partner
	query := r.applyFilter(r.db.WithContext(ctx).Model(&program.Partner{}), filter)

	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// FindByProgram finds partners associated to the given program. The
// associations column holds serialized JSON, so membership is matched on the
// serialized program id.
func (r *GormPartnerRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) ([]program.Partner, error) {
	var partners []program.Partner
	pattern := fmt.Sprintf("%%\"program_id\":\"%s\"%%", programID)
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&program.Partner{}).Where("associations LIKE ?", pattern),
		filter,
	)

	if err := query.Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, p *program.Partner) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete deletes a partner
func (r *GormPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&program.Partner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts partners matching the filter
func (r *GormPartnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&program.Partner{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to a query
func (r *GormPartnerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("name ASC")
	}
	orderBy := ValidateSortField(filter.OrderBy, PartnerSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPartnerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR expected_naming LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ program.PartnerRepository = (*GormPartnerRepository)(nil)
