package mailer

import (
	"context"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SignatureService handles email signature operations
type SignatureService struct {
	signatureRepo mailer.SignatureRepository
}

// NewSignatureService creates a new SignatureService
func NewSignatureService(signatureRepo mailer.SignatureRepository) *SignatureService {
	return &SignatureService{signatureRepo: signatureRepo}
}

// Create creates a signature
func (s *SignatureService) Create(ctx context.Context, req SignatureRequest) (*SignatureResponse, error) {
	sig, err := mailer.NewSignature(req.Name, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.signatureRepo.Save(ctx, sig); err != nil {
		return nil, err
	}

	response := ToSignatureResponse(sig)
	return &response, nil
}

// GetByID retrieves a signature by ID
func (s *SignatureService) GetByID(ctx context.Context, id uuid.UUID) (*SignatureResponse, error) {
	sig, err := s.signatureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSignatureResponse(sig)
	return &response, nil
}

// List retrieves all signatures
func (s *SignatureService) List(ctx context.Context, filter shared.Filter) ([]SignatureResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	signatures, err := s.signatureRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToSignatureResponses(signatures), nil
}

// Update updates a signature
func (s *SignatureService) Update(ctx context.Context, id uuid.UUID, req SignatureRequest) (*SignatureResponse, error) {
	sig, err := s.signatureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sig.Update(req.Name, req.Content); err != nil {
		return nil, err
	}

	if err := s.signatureRepo.Save(ctx, sig); err != nil {
		return nil, err
	}

	response := ToSignatureResponse(sig)
	return &response, nil
}

// Delete deletes a signature
func (s *SignatureService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.signatureRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.signatureRepo.Delete(ctx, id)
}
