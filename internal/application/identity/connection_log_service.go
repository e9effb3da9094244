package identity

import (
	"context"
	"time"

	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConnectionLogService exposes the login audit trail to administrators
type ConnectionLogService struct {
	connectionLogRepo identity.ConnectionLogRepository
	logger            *zap.Logger
}

// NewConnectionLogService creates a new ConnectionLogService
func NewConnectionLogService(connectionLogRepo identity.ConnectionLogRepository, logger *zap.Logger) *ConnectionLogService {
	return &ConnectionLogService{connectionLogRepo: connectionLogRepo, logger: logger}
}

// List retrieves connection log entries with pagination, most recent first
func (s *ConnectionLogService) List(ctx context.Context, filter shared.Filter) ([]ConnectionLogResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	logs, err := s.connectionLogRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.connectionLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToConnectionLogResponses(logs), total, nil
}

// Purge deletes entries recorded before the cutoff and returns how many were
// removed
func (s *ConnectionLogService) Purge(ctx context.Context, before time.Time) (int64, error) {
	deleted, err := s.connectionLogRepo.DeleteBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Connection logs purged",
		zap.Time("before", before),
		zap.Int64("deleted", deleted))
	return deleted, nil
}
