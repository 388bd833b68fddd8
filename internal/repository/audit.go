package repository

import (
	"context"

	"github.com/dmedarov/villageride/internal/domain"
)

// AuditLogRepository defines the persistence operations for the audit log.
type AuditLogRepository interface {
	// Insert persists one audit entry.
	Insert(ctx context.Context, entry *domain.AuditEntry) error

	// List retrieves the most recent entries, descending by timestamp.
	List(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
