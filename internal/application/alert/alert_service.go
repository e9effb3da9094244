package alert

import (
	"context"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftComposer creates the partner-facing email draft when an alert opens.
// Implemented by the mailer draft service; nil disables draft composition.
type DraftComposer interface {
	ComposeForAlert(ctx context.Context, a *alert.Alert) error
}

// NotificationDispatcher fans an opened alert out to interested project leads
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, a *alert.Alert) (int, error)
}

// Service owns the alert lifecycle. Raising an alert persists it first, then
// runs the side effects in a fixed order: draft composition, then
// notification dispatch. Side effect failures are logged, never propagated,
// so the primary write is not blocked by notification plumbing.
type Service struct {
	alertRepo  alert.AlertRepository
	composer   DraftComposer
	dispatcher NotificationDispatcher
	logger     *zap.Logger
}

// NewService creates a new alert Service
func NewService(
	alertRepo alert.AlertRepository,
	composer DraftComposer,
	dispatcher NotificationDispatcher,
	logger *zap.Logger,
) *Service {
	return &Service{
		alertRepo:  alertRepo,
		composer:   composer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create raises a new alert and runs its side effects
func (s *Service) Create(ctx context.Context, req CreateAlertRequest) (*AlertResponse, error) {
	a, err := alert.NewAlert(req.TestID, alert.TestType(req.TestType), req.Description, req.ProgramID, req.PartnerID, req.CreatorID)
	if err != nil {
		return nil, err
	}

	if err := s.alertRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	if s.composer != nil {
		if err := s.composer.ComposeForAlert(ctx, a); err != nil {
			s.logger.Warn("Draft composition failed for alert",
				zap.String("alert_id", a.ID.String()),
				zap.Error(err))
		}
	}

	if s.dispatcher != nil {
		count, err := s.dispatcher.Dispatch(ctx, a)
		if err != nil {
			s.logger.Warn("Notification dispatch failed for alert",
				zap.String("alert_id", a.ID.String()),
				zap.Error(err))
		} else if count > 0 {
			s.logger.Info("Alert notifications dispatched",
				zap.String("alert_id", a.ID.String()),
				zap.Int("recipients", count))
		}
	}

	response := ToAlertResponse(a)
	return &response, nil
}

// GetByID retrieves an alert by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AlertResponse, error) {
	a, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToAlertResponse(a)
	return &response, nil
}

// List retrieves alerts, optionally narrowed to one lifecycle state
func (s *Service) List(ctx context.Context, status string, filter shared.Filter) ([]AlertResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var alerts []alert.Alert
	var err error
	if status != "" {
		alerts, err = s.alertRepo.FindByStatus(ctx, alert.Status(status), filter)
	} else {
		alerts, err = s.alertRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.alertRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToAlertResponses(alerts), total, nil
}

// ListForUser retrieves alerts visible to the given user. Viewer roles are
// restricted to their scope; a viewer without a scope id is denied rather
// than shown an empty list.
func (s *Service) ListForUser(ctx context.Context, actor *identity.User, status string, filter shared.Filter) ([]AlertResponse, int64, error) {
	if actor.IsViewer() {
		if !actor.ScopeReady() {
			return nil, 0, shared.ErrForbidden
		}
		if filter.Filters == nil {
			filter.Filters = make(map[string]interface{})
		}
		switch actor.Role {
		case identity.RoleProgramViewer:
			filter.Filters["program_id"] = *actor.ProgramID
		case identity.RolePartnerViewer:
			filter.Filters["partner_id"] = *actor.PartnerID
		}
	}

	return s.List(ctx, status, filter)
}

// Resolve marks an alert resolved. Repeat calls succeed and refresh the
// resolved timestamp.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*AlertResponse, error) {
	a, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Resolve()

	if err := s.alertRepo.Save(ctx, a); err != nil {
		return nil, err
	}

	response := ToAlertResponse(a)
	return &response, nil
}

// ResolveViaSend resolves the alert owning a draft that was just sent. Kept
// as a named transition so the policy stays visible and testable.
func (s *Service) ResolveViaSend(ctx context.Context, alertID uuid.UUID) error {
	a, err := s.alertRepo.FindByID(ctx, alertID)
	if err != nil {
		return err
	}

	a.Resolve()

	if err := s.alertRepo.Save(ctx, a); err != nil {
		return err
	}

	s.logger.Info("Alert resolved via draft send", zap.String("alert_id", alertID.String()))
	return nil
}

// Delete permanently removes a resolved alert
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.CanDelete(); err != nil {
		return err
	}

	return s.alertRepo.Delete(ctx, id)
}
