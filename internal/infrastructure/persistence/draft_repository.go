package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDraftRepository implements DraftRepository using GORM
type GormDraftRepository struct {
	db *gorm.DB
}

// NewGormDraftRepository creates a new GORM draft repository
func NewGormDraftRepository(db *gorm.DB) *GormDraftRepository {
	return &GormDraftRepository{db: db}
}

// FindByID finds a draft by its ID
func (r *GormDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*mailer.EmailDraft, error) {
	var d mailer.EmailDraft
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAll finds drafts matching the filter
func (r *GormDraftRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mailer.EmailDraft, error) {
	var drafts []mailer.EmailDraft
	query := r.db.WithContext(ctx).Model(&mailer.EmailDraft{})

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "alert_id":
			query = query.Where("alert_id = ?", value)
		}
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// FindByAlert finds drafts composed for the given alert, newest first
func (r *GormDraftRepository) FindByAlert(ctx context.Context, alertID uuid.UUID) ([]mailer.EmailDraft, error) {
	var drafts []mailer.EmailDraft
	if err := r.db.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("created_at DESC").
		Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// Save creates or updates a draft
func (r *GormDraftRepository) Save(ctx context.Context, d *mailer.EmailDraft) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete deletes a draft
func (r *GormDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&mailer.EmailDraft{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormDraftRepository implements DraftRepository
var _ mailer.DraftRepository = (*GormDraftRepository)(nil)
