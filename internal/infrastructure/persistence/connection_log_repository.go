package persistence

import (
	"context"
	"time"

	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormConnectionLogRepository implements ConnectionLogRepository using GORM
type GormConnectionLogRepository struct {
	db *gorm.DB
}

// NewGormConnectionLogRepository creates a new GORM connection log repository
func NewGormConnectionLogRepository(db *gorm.DB) *GormConnectionLogRepository {
	return &GormConnectionLogRepository{db: db}
}

// Save records a connection log entry
func (r *GormConnectionLogRepository) Save(ctx context.Context, l *identity.ConnectionLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// FindAll finds entries matching the filter, most recent first
func (r *GormConnectionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.ConnectionLog, error) {
	var logs []identity.ConnectionLog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.ConnectionLog{}), filter)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Count counts entries matching the filter
func (r *GormConnectionLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&identity.ConnectionLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteBefore deletes entries recorded before the cutoff
func (r *GormConnectionLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("login_at < ?", cutoff).
		Delete(&identity.ConnectionLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to a query
func (r *GormConnectionLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy == "" {
		return query.Order("login_at DESC")
	}
	orderBy := ValidateSortField(filter.OrderBy, ConnectionLogSortFields, "login_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormConnectionLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "role":
			query = query.Where("role = ?", value)
		}
	}
	return query
}

// Ensure GormConnectionLogRepository implements ConnectionLogRepository
var _ identity.ConnectionLogRepository = (*GormConnectionLogRepository)(nil)
