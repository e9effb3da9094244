package alert

import (
	"context"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService creates and serves in-app notifications
type NotificationService struct {
	notificationRepo alert.NotificationRepository
	userRepo         identity.UserRepository
	programRepo      program.ProgramRepository
	partnerRepo      program.PartnerRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo alert.NotificationRepository,
	userRepo identity.UserRepository,
	programRepo program.ProgramRepository,
	partnerRepo program.PartnerRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		programRepo:      programRepo,
		partnerRepo:      partnerRepo,
		logger:           logger,
	}
}

// Dispatch notifies every active project lead whose program list contains
// the alert's program. An empty recipient set is a no-op, not an error.
// Returns the number of notifications created.
func (s *NotificationService) Dispatch(ctx context.Context, a *alert.Alert) (int, error) {
	leads, err := s.userRepo.FindProjectLeadsByProgram(ctx, a.ProgramID)
	if err != nil {
		return 0, err
	}
	if len(leads) == 0 {
		return 0, nil
	}

	programName := s.programName(ctx, a.ProgramID)
	partnerName := s.partnerName(ctx, a.PartnerID)

	created := 0
	for i := range leads {
		n := alert.NewNotification(leads[i].ID, a, programName, partnerName)
		if err := s.notificationRepo.Save(ctx, n); err != nil {
			s.logger.Warn("Failed to save notification",
				zap.String("alert_id", a.ID.String()),
				zap.String("recipient_id", leads[i].ID.String()),
				zap.Error(err))
			continue
		}
		created++
	}

	return created, nil
}

// ListByRecipient retrieves the user's notifications, newest first
func (s *NotificationService) ListByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]NotificationResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	notifications, err := s.notificationRepo.FindByRecipient(ctx, recipientID, filter)
	if err != nil {
		return nil, err
	}

	return ToNotificationResponses(notifications), nil
}

// UnreadCount counts the user's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead flips one notification to read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID {
		return shared.ErrForbidden
	}

	n.MarkRead()
	return s.notificationRepo.Save(ctx, n)
}

// MarkAllRead flips every notification of the user to read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

func (s *NotificationService) programName(ctx context.Context, id uuid.UUID) string {
	p, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Program lookup failed while composing notification", zap.String("program_id", id.String()), zap.Error(err))
		return "N/A"
	}
	return p.Name
}

func (s *NotificationService) partnerName(ctx context.Context, id uuid.UUID) string {
	p, err := s.partnerRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("Partner lookup failed while composing notification", zap.String("partner_id", id.String()), zap.Error(err))
		return "N/A"
	}
	return p.Name
}
