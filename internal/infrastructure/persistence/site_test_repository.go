package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSiteTestRepository implements SiteTestRepository using GORM
type GormSiteTestRepository struct {
	db *gorm.DB
}

// NewGormSiteTestRepository creates a new GORM site test repository
func NewGormSiteTestRepository(db *gorm.DB) *GormSiteTestRepository {
	return &GormSiteTestRepository{db: db}
}

// FindByID finds a site test by its ID
func (r *GormSiteTestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.SiteTest, error) {
	var t audit.SiteTest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds site tests matching the query
func (r *GormSiteTestRepository) FindAll(ctx context.Context, query audit.TestQuery, filter shared.Filter) ([]audit.SiteTest, error) {
	var tests []audit.SiteTest
	q := r.applyFilter(applyTestQuery(r.db.WithContext(ctx).Model(&audit.SiteTest{}), query), filter)

	if err := q.Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

// Save creates or updates a site test
func (r *GormSiteTestRepository) Save(ctx context.Context, t *audit.SiteTest) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a site test
func (r *GormSiteTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&audit.SiteTest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts site tests matching the query
func (r *GormSiteTestRepository) Count(ctx context.Context, query audit.TestQuery) (int64, error) {
	var count int64
	if err := applyTestQuery(r.db.WithContext(ctx).Model(&audit.SiteTest{}), query).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDiscountApplied counts site tests where the discount was applied
func (r *GormSiteTestRepository) CountDiscountApplied(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&audit.SiteTest{}).
		Where("discount_applied = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to a query
func (r *GormSiteTestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TestSortFields, "test_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyTestQuery narrows a test listing to the requested program, partner and
// date range. Zero values mean no constraint.
func applyTestQuery(q *gorm.DB, query audit.TestQuery) *gorm.DB {
	if query.ProgramID != uuid.Nil {
		q = q.Where("program_id = ?", query.ProgramID)
	}
	if query.PartnerID != uuid.Nil {
		q = q.Where("partner_id = ?", query.PartnerID)
	}
	if !query.From.IsZero() {
		q = q.Where("test_date >= ?", query.From)
	}
	if !query.To.IsZero() {
		q = q.Where("test_date <= ?", query.To)
	}
	return q
}

// Ensure GormSiteTestRepository implements SiteTestRepository
var _ audit.SiteTestRepository = (*GormSiteTestRepository)(nil)
