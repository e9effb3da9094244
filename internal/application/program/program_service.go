package program

import (
	"context"

	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProgramService handles program-related business operations
type ProgramService struct {
	programRepo program.ProgramRepository
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo program.ProgramRepository) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
	}
}

// Create creates a new program
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*ProgramResponse, error) {
	p, err := program.NewProgram(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if req.PlatformURL != "" || req.PlatformLogin != "" || req.PlatformPassword != "" {
		if err := p.SetPlatformAccess(req.PlatformURL, req.PlatformLogin, req.PlatformPassword); err != nil {
			return nil, err
		}
	}

	if err := s.programRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProgramResponse(p)
	return &response, nil
}

// GetByID retrieves a program by ID
func (s *ProgramService) GetByID(ctx context.Context, id uuid.UUID) (*ProgramResponse, error) {
	p, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProgramResponse(p)
	return &response, nil
}

// List retrieves programs with pagination
func (s *ProgramService) List(ctx context.Context, filter shared.Filter) ([]ProgramResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	programs, err := s.programRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.programRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToProgramResponses(programs), total, nil
}

// Update updates a program
func (s *ProgramService) Update(ctx context.Context, id uuid.UUID, req UpdateProgramRequest) (*ProgramResponse, error) {
	p, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := p.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := p.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := p.Update(name, description); err != nil {
		return nil, err
	}

	if req.PlatformURL != nil || req.PlatformLogin != nil || req.PlatformPassword != nil {
		url := p.PlatformURL
		if req.PlatformURL != nil {
			url = *req.PlatformURL
		}
		login := p.PlatformLogin
		if req.PlatformLogin != nil {
			login = *req.PlatformLogin
		}
		password := p.PlatformPassword
		if req.PlatformPassword != nil {
			password = *req.PlatformPassword
		}
		if err := p.SetPlatformAccess(url, login, password); err != nil {
			return nil, err
		}
	}

	if err := s.programRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProgramResponse(p)
	return &response, nil
}

// Delete deletes a program. Existing tests and alerts keep their program id;
// referential cleanup is deliberately not cascaded.
func (s *ProgramService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.programRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, id)
}
