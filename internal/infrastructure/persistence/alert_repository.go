package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAlertRepository implements AlertRepository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM alert repository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	var a alert.Alert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindAll finds alerts matching the filter
func (r *GormAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]alert.Alert, error) {
	var alerts []alert.Alert
	query := r.applyFilter(r.db.WithContext(ctx).Model(&alert.Alert{}), filter)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByStatus finds alerts in the given state
func (r *GormAlertRepository) FindByStatus(ctx context.Context, status alert.Status, filter shared.Filter) ([]alert.Alert, error) {
	var alerts []alert.Alert
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&alert.Alert{}).Where("status = ?", status),
		filter,
	)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByTest finds alerts raised against the given test
func (r *GormAlertRepository) FindByTest(ctx context.Context, testID uuid.UUID) ([]alert.Alert, error) {
	var alerts []alert.Alert
	if err := r.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Save creates or updates an alert
func (r *GormAlertRepository) Save(ctx context.Context, a *alert.Alert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete deletes an alert
func (r *GormAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&alert.Alert{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts alerts matching the filter
func (r *GormAlertRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&alert.Alert{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts alerts in the given state
func (r *GormAlertRepository) CountByStatus(ctx context.Context, status alert.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&alert.Alert{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to a query
func (r *GormAlertRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AlertSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAlertRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "program_id":
			query = query.Where("program_id = ?", value)
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		case "test_type":
			query = query.Where("test_type = ?", value)
		}
	}
	return query
}

// Ensure GormAlertRepository implements AlertRepository
var _ alert.AlertRepository = (*GormAlertRepository)(nil)
