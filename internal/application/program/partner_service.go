package program

import (
	"context"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerService handles partner-related business operations
type PartnerService struct {
	partnerRepo program.PartnerRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerRepo program.PartnerRepository) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
	}
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, req CreatePartnerRequest) (*PartnerResponse, error) {
	p, err := program.NewPartner(req.Name)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, req.ExpectedNaming, req.LogoURL); err != nil {
		return nil, err
	}
	if err := p.SetContactEmail(req.ContactEmail); err != nil {
		return nil, err
	}
	if err := p.SetExpectedDiscount(req.ExpectedDiscount); err != nil {
		return nil, err
	}
	if len(req.Associations) > 0 {
		if err := p.SetAssociations(toAssociations(req.Associations)); err != nil {
			return nil, err
		}
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// GetByID retrieves a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, id uuid.UUID) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// List retrieves partners with pagination, optionally filtered by program
func (s *PartnerService) List(ctx context.Context, programID uuid.UUID, filter shared.Filter) ([]PartnerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var partners []program.Partner
	var err error
	if programID != uuid.Nil {
		partners, err = s.partnerRepo.FindByProgram(ctx, programID, filter)
	} else {
		partners, err = s.partnerRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.partnerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToPartnerResponses(partners), total, nil
}

// Update updates a partner
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := p.Name
	if req.Name != nil {
		name = *req.Name
	}
	naming := p.ExpectedNaming
	if req.ExpectedNaming != nil {
		naming = *req.ExpectedNaming
	}
	logo := p.LogoURL
	if req.LogoURL != nil {
		logo = *req.LogoURL
	}
	if err := p.Update(name, naming, logo); err != nil {
		return nil, err
	}

	if req.ContactEmail != nil {
		if err := p.SetContactEmail(*req.ContactEmail); err != nil {
			return nil, err
		}
	}
	if req.ExpectedDiscount != nil {
		if err := p.SetExpectedDiscount(req.ExpectedDiscount); err != nil {
			return nil, err
		}
	}
	if req.Associations != nil {
		if err := p.SetAssociations(toAssociations(req.Associations)); err != nil {
			return nil, err
		}
	}

	if err := s.partnerRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPartnerResponse(p)
	return &response, nil
}

// Delete deletes a partner. Tests and alerts referencing it are kept.
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.partnerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.partnerRepo.Delete(ctx, id)
}
