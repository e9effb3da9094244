package persistence

import (
	"context"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// FindAll finds history rows matching the filter, newest first
func (r *GormHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mailer.EmailHistory, error) {
	var rows []mailer.EmailHistory
	query := r.db.WithContext(ctx).Model(&mailer.EmailHistory{})

	for key, value := range filter.Filters {
		switch key {
		case "outcome":
			query = query.Where("outcome = ?", value)
		case "alert_id":
			query = query.Where("alert_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, HistorySortFields, "sent_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByAlert finds history rows for the given alert, newest first
func (r *GormHistoryRepository) FindByAlert(ctx context.Context, alertID uuid.UUID) ([]mailer.EmailHistory, error) {
	var rows []mailer.EmailHistory
	if err := r.db.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("sent_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save appends a history row
func (r *GormHistoryRepository) Save(ctx context.Context, h *mailer.EmailHistory) error {
	return r.db.WithContext(ctx).Save(h).Error
}

// Ensure GormHistoryRepository implements HistoryRepository
var _ mailer.HistoryRepository = (*GormHistoryRepository)(nil)
