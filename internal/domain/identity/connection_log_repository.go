package identity

import (
	"context"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
)

// ConnectionLogRepository defines the interface for login audit persistence
type ConnectionLogRepository interface {
	// Save records a connection log entry
	Save(ctx context.Context, l *ConnectionLog) error

	// FindAll finds entries matching the filter, most recent first
	FindAll(ctx context.Context, filter shared.Filter) ([]ConnectionLog, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// DeleteBefore deletes entries recorded before the cutoff and returns how
	// many were removed
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
