package mailer

import (
	"context"
	"errors"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService handles email template operations
type TemplateService struct {
	templateRepo mailer.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo mailer.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templateRepo: templateRepo, logger: logger}
}

// List retrieves all templates. An empty store is seeded with the built-in
// French template first, so composition always has a default to fall back on.
func (s *TemplateService) List(ctx context.Context, filter shared.Filter) ([]TemplateResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	total, err := s.templateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		if err := s.seedDefault(ctx); err != nil {
			return nil, err
		}
	}

	templates, err := s.templateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToTemplateResponses(templates), nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	t, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTemplateResponse(t)
	return &response, nil
}

// Create creates a template
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	t, err := mailer.NewEmailTemplate(req.Name, req.SubjectTemplate, req.BodyTemplate, req.IsDefault)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(t)
	return &response, nil
}

// Update updates a template's content
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	t, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Update(req.Name, req.SubjectTemplate, req.BodyTemplate); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(t)
	return &response, nil
}

// SetDefault marks the template as the one used for automatic composition
func (s *TemplateService) SetDefault(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	t, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.IsDefault = true
	if err := s.templateRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(t)
	return &response, nil
}

// Delete deletes a template. Deleting the default promotes the oldest
// remaining template; an emptied store is reseeded with the built-in
// template on next use.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.templateRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

// Default returns the default template, seeding the built-in one when none
// exists yet
func (s *TemplateService) Default(ctx context.Context) (*mailer.EmailTemplate, error) {
	t, err := s.templateRepo.FindDefault(ctx)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.seedDefault(ctx); err != nil {
		return nil, err
	}
	return s.templateRepo.FindDefault(ctx)
}

func (s *TemplateService) seedDefault(ctx context.Context) error {
	t := mailer.NewDefaultTemplate()
	if err := s.templateRepo.Save(ctx, t); err != nil {
		return err
	}
	s.logger.Info("Seeded built-in default email template", zap.String("template_id", t.ID.String()))
	return nil
}
