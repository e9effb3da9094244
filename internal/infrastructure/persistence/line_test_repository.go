package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLineTestRepository implements LineTestRepository using GORM
type GormLineTestRepository struct {
	db *gorm.DB
}

// NewGormLineTestRepository creates a new GORM line test repository
func NewGormLineTestRepository(db *gorm.DB) *GormLineTestRepository {
	return &GormLineTestRepository{db: db}
}

// FindByID finds a line test by its ID
func (r *GormLineTestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.LineTest, error) {
	var t audit.LineTest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds line tests matching the query
func (r *GormLineTestRepository) FindAll(ctx context.Context, query audit.TestQuery, filter shared.Filter) ([]audit.LineTest, error) {
	var tests []audit.LineTest
	q := r.applyFilter(applyTestQuery(r.db.WithContext(ctx).Model(&audit.LineTest{}), query), filter)

	if err := q.Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

// Save creates or updates a line test
func (r *GormLineTestRepository) Save(ctx context.Context, t *audit.LineTest) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a line test
func (r *GormLineTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&audit.LineTest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts line tests matching the query
func (r *GormLineTestRepository) Count(ctx context.Context, query audit.TestQuery) (int64, error) {
	var count int64
	if err := applyTestQuery(r.db.WithContext(ctx).Model(&audit.LineTest{}), query).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountOfferApplied counts line tests where the offer was honored
func (r *GormLineTestRepository) CountOfferApplied(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&audit.LineTest{}).
		Where("offer_applied = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to a query
func (r *GormLineTestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TestSortFields, "test_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormLineTestRepository implements LineTestRepository
var _ audit.LineTestRepository = (*GormLineTestRepository)(nil)
