package service

import (
	"context"
	"log"
	"time"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// AuditSink records action events after mutating operations. Fire-and-forget
// from the caller's perspective: a sink failure must never roll back or
// block the primary operation.
type AuditSink interface {
	Record(ctx context.Context, action string, rideID, requestID *int64, adminUser string)
}

// AuditRecorder is an AuditSink backed by the audit_logs table. Failures
// are surfaced to operational logging only.
type AuditRecorder struct {
	repo repository.AuditLogRepository
}

// NewAuditRecorder creates a new AuditRecorder.
func NewAuditRecorder(repo repository.AuditLogRepository) *AuditRecorder {
	return &AuditRecorder{repo: repo}
}

// Ensure the interface is satisfied.
var _ AuditSink = (*AuditRecorder)(nil)

// Record persists one audit event with a UTC second-precision timestamp.
func (r *AuditRecorder) Record(ctx context.Context, action string, rideID, requestID *int64, adminUser string) {
	entry := &domain.AuditEntry{
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Action:    action,
		RideID:    rideID,
		RequestID: requestID,
		AdminUser: adminUser,
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		log.Printf("audit: failed to record %q: %v", action, err)
	}
}
