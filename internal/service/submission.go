package service

import (
	"context"
	"database/sql"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
	"github.com/dmedarov/villageride/internal/repository/postgres"
)

// SubmissionService handles validated creation of rides and ride requests.
// When constructed with a database handle, each insert runs in its own
// scoped transaction; the injected repositories are used directly otherwise
// (tests). The audit sink is notified after a successful create and its
// outcome never affects the primary operation.
type SubmissionService struct {
	db          *sql.DB
	rideRepo    repository.RideRepository
	requestRepo repository.RideRequestRepository
	audit       AuditSink
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	db *sql.DB,
	rideRepo repository.RideRepository,
	requestRepo repository.RideRequestRepository,
	audit AuditSink,
) *SubmissionService {
	return &SubmissionService{
		db:          db,
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		audit:       audit,
	}
}

// OfferRide validates and persists a ride offer. adminUser is empty for
// public submissions.
func (s *SubmissionService) OfferRide(ctx context.Context, in RideSubmission, adminUser string) (*domain.Ride, error) {
	ride, fieldErrs := ValidateRideSubmission(in)
	if fieldErrs != nil {
		return nil, fieldErrs
	}

	if err := s.createRide(ctx, ride); err != nil {
		return nil, err
	}

	if s.audit != nil {
		id := ride.ID
		s.audit.Record(ctx, domain.AuditActionOfferRide, &id, nil, adminUser)
	}

	return ride, nil
}

// RequestRide validates and persists a ride request.
func (s *SubmissionService) RequestRide(ctx context.Context, in RideRequestSubmission, adminUser string) (*domain.RideRequest, error) {
	req, fieldErrs := ValidateRideRequestSubmission(in)
	if fieldErrs != nil {
		return nil, fieldErrs
	}

	if err := s.createRequest(ctx, req); err != nil {
		return nil, err
	}

	if s.audit != nil {
		id := req.ID
		s.audit.Record(ctx, domain.AuditActionRequestRide, nil, &id, adminUser)
	}

	return req, nil
}

// createRide inserts the ride inside a scoped transaction when a database
// handle is available.
func (s *SubmissionService) createRide(ctx context.Context, ride *domain.Ride) (err error) {
	if s.db == nil {
		_, err = s.rideRepo.Create(ctx, ride)
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = postgres.NewRideRepositoryWithTx(tx).Create(ctx, ride); err != nil {
		return err
	}
	return tx.Commit()
}

// createRequest inserts the ride request inside a scoped transaction when a
// database handle is available.
func (s *SubmissionService) createRequest(ctx context.Context, req *domain.RideRequest) (err error) {
	if s.db == nil {
		_, err = s.requestRepo.Create(ctx, req)
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = postgres.NewRideRequestRepositoryWithTx(tx).Create(ctx, req); err != nil {
		return err
	}
	return tx.Commit()
}
