package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GORM template repository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*mailer.EmailTemplate, error) {
	var t mailer.EmailTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds all templates
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mailer.EmailTemplate, error) {
	var templates []mailer.EmailTemplate
	query := r.db.WithContext(ctx).Model(&mailer.EmailTemplate{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TemplateSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindDefault finds the default template
func (r *GormTemplateRepository) FindDefault(ctx context.Context) (*mailer.EmailTemplate, error) {
	var t mailer.EmailTemplate
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save creates or updates a template. When the template is flagged as default,
// the flag is cleared on every other template in the same transaction.
func (r *GormTemplateRepository) Save(ctx context.Context, t *mailer.EmailTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.IsDefault {
			if err := tx.Model(&mailer.EmailTemplate{}).
				Where("id <> ? AND is_default = ?", t.ID, true).
				Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return tx.Save(t).Error
	})
}

// Delete deletes a template. When the default is deleted, the oldest
// remaining template is promoted in the same transaction so exactly one
// default survives whenever any template exists.
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t mailer.EmailTemplate
		if err := tx.Where("id = ?", id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("id = ?", id).Delete(&mailer.EmailTemplate{}).Error; err != nil {
			return err
		}
		if !t.IsDefault {
			return nil
		}

		var next mailer.EmailTemplate
		if err := tx.Order("created_at ASC").First(&next).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&mailer.EmailTemplate{}).
			Where("id = ?", next.ID).
			Updates(map[string]interface{}{"is_default": true, "updated_at": time.Now()}).Error
	})
}

// Count counts templates
func (r *GormTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&mailer.EmailTemplate{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ mailer.TemplateRepository = (*GormTemplateRepository)(nil)
