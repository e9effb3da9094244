package persistence

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSignatureRepository implements SignatureRepository using GORM
type GormSignatureRepository struct {
	db *gorm.DB
}

// NewGormSignatureRepository creates a new GORM signature repository
func NewGormSignatureRepository(db *gorm.DB) *GormSignatureRepository {
	return &GormSignatureRepository{db: db}
}

// FindByID finds a signature by its ID
func (r *GormSignatureRepository) FindByID(ctx context.Context, id uuid.UUID) (*mailer.Signature, error) {
	var s mailer.Signature
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds all signatures
func (r *GormSignatureRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mailer.Signature, error) {
	var signatures []mailer.Signature
	query := r.db.WithContext(ctx).Model(&mailer.Signature{}).Order("name ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&signatures).Error; err != nil {
		return nil, err
	}
	return signatures, nil
}

// Save creates or updates a signature
func (r *GormSignatureRepository) Save(ctx context.Context, s *mailer.Signature) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete deletes a signature
func (r *GormSignatureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&mailer.Signature{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSignatureRepository implements SignatureRepository
var _ mailer.SignatureRepository = (*GormSignatureRepository)(nil)
