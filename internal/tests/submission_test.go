package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/service"
)

// ──────────────────────────────────────────────
// 3. SUBMISSION FLOW
// ──────────────────────────────────────────────

func newSubmissionFixture() (*MockRideRepository, *MockRideRequestRepository, *MockAuditLogRepository, *service.SubmissionService) {
	rideRepo := NewMockRideRepository()
	requestRepo := NewMockRideRequestRepository()
	auditRepo := NewMockAuditLogRepository()
	svc := service.NewSubmissionService(nil, rideRepo, requestRepo, service.NewAuditRecorder(auditRepo))
	return rideRepo, requestRepo, auditRepo, svc
}

func TestOfferRide_ValidInput_PersistsAndAudits(t *testing.T) {
	t.Parallel()

	rideRepo, _, auditRepo, svc := newSubmissionFixture()

	ride, err := svc.OfferRide(context.Background(), validRideSubmission(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if ride.ID == 0 {
		t.Error("expected the ride ID to be set")
	}
	if !ride.IsActive {
		t.Error("expected a new ride to be active")
	}
	if stored := rideRepo.GetRide(ride.ID); stored == nil {
		t.Fatal("expected the ride to be persisted")
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Action != domain.AuditActionOfferRide {
		t.Errorf("expected action %s, got %s", domain.AuditActionOfferRide, entry.Action)
	}
	if entry.RideID == nil || *entry.RideID != ride.ID {
		t.Errorf("expected ride ID %d in the entry, got %v", ride.ID, entry.RideID)
	}
	if entry.RequestID != nil {
		t.Error("expected no request ID on a ride offer")
	}
	if entry.AdminUser != "" {
		t.Errorf("expected no admin user on a public submission, got %q", entry.AdminUser)
	}
}

func TestOfferRide_InvalidInput_NoRowNoAudit(t *testing.T) {
	t.Parallel()

	rideRepo, _, auditRepo, svc := newSubmissionFixture()

	in := validRideSubmission()
	in.Seats = "9"
	in.Date = yesterday()

	_, err := svc.OfferRide(context.Background(), in, "")
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var fieldErrs service.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if _, ok := fieldErrs["seats"]; !ok {
		t.Error("expected a seats error")
	}
	if _, ok := fieldErrs["date"]; !ok {
		t.Error("expected a date error")
	}

	if count := atomic.LoadInt32(&rideRepo.CreateCallCount); count != 0 {
		t.Errorf("expected no create call, got %d", count)
	}
	if len(auditRepo.Entries()) != 0 {
		t.Error("expected no audit entry on a rejected submission")
	}
}

func TestOfferRide_AuditFailure_DoesNotBlock(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	auditRepo := NewMockAuditLogRepository()
	auditRepo.InsertError = errors.New("sink unavailable")
	svc := service.NewSubmissionService(nil, rideRepo, NewMockRideRequestRepository(), service.NewAuditRecorder(auditRepo))

	ride, err := svc.OfferRide(context.Background(), validRideSubmission(), "")
	if err != nil {
		t.Fatalf("expected the offer to succeed despite the audit failure, got: %v", err)
	}
	if rideRepo.GetRide(ride.ID) == nil {
		t.Error("expected the ride to be persisted")
	}
	if count := atomic.LoadInt32(&auditRepo.InsertCallCount); count != 1 {
		t.Errorf("expected 1 audit attempt, got %d", count)
	}
}

func TestOfferRide_StoreFailure_ReturnsError(t *testing.T) {
	t.Parallel()

	rideRepo := NewMockRideRepository()
	rideRepo.CreateError = errors.New("store unavailable")
	auditRepo := NewMockAuditLogRepository()
	svc := service.NewSubmissionService(nil, rideRepo, NewMockRideRequestRepository(), service.NewAuditRecorder(auditRepo))

	_, err := svc.OfferRide(context.Background(), validRideSubmission(), "")
	if err == nil {
		t.Fatal("expected a store error")
	}
	if len(auditRepo.Entries()) != 0 {
		t.Error("expected no audit entry on a failed insert")
	}
}

func TestRequestRide_ValidInput_PersistsAndAudits(t *testing.T) {
	t.Parallel()

	_, requestRepo, auditRepo, svc := newSubmissionFixture()

	req, err := svc.RequestRide(context.Background(), validRequestSubmission(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if req.Status != domain.RequestStatusOpen {
		t.Errorf("expected a new request to be open, got %s", req.Status)
	}
	if requestRepo.GetRequest(req.ID) == nil {
		t.Fatal("expected the request to be persisted")
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Action != domain.AuditActionRequestRide {
		t.Errorf("expected action %s, got %s", domain.AuditActionRequestRide, entry.Action)
	}
	if entry.RequestID == nil || *entry.RequestID != req.ID {
		t.Errorf("expected request ID %d in the entry, got %v", req.ID, entry.RequestID)
	}
	if entry.RideID != nil {
		t.Error("expected no ride ID on a ride request")
	}
}

func TestRequestRide_EmptyNote_IsAllowed(t *testing.T) {
	t.Parallel()

	_, requestRepo, _, svc := newSubmissionFixture()

	in := validRequestSubmission()
	in.Note = "   "

	req, err := svc.RequestRide(context.Background(), in, "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stored := requestRepo.GetRequest(req.ID); stored.Note != "" {
		t.Errorf("expected the note to be trimmed empty, got %q", stored.Note)
	}
}

func TestSubmission_AdminUser_IsRecordedInAudit(t *testing.T) {
	t.Parallel()

	_, _, auditRepo, svc := newSubmissionFixture()

	if _, err := svc.OfferRide(context.Background(), validRideSubmission(), "admin"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 || entries[0].AdminUser != "admin" {
		t.Errorf("expected the admin user on the entry, got %+v", entries)
	}
}
