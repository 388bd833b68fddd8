package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// auditLogLimit caps the admin audit-log view.
const auditLogLimit = 500

// DashboardStats holds the admin dashboard aggregate counts, all computed
// as of the current date.
type DashboardStats struct {
	TotalRides     int
	RidesToday     int
	UpcomingRides  int
	ActiveRequests int
	RequestsToday  int
}

// AdminService handles admin authentication and moderation views.
type AdminService struct {
	adminRepo   repository.AdminUserRepository
	auditRepo   repository.AuditLogRepository
	rideRepo    repository.RideRepository
	requestRepo repository.RideRequestRepository
	audit       AuditSink
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	adminRepo repository.AdminUserRepository,
	auditRepo repository.AuditLogRepository,
	rideRepo repository.RideRepository,
	requestRepo repository.RideRequestRepository,
	audit AuditSink,
) *AdminService {
	return &AdminService{
		adminRepo:   adminRepo,
		auditRepo:   auditRepo,
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		audit:       audit,
	}
}

// Login verifies admin credentials. Both an unknown username and a wrong
// password return the same ErrInvalidCredentials so the response cannot be
// used for user enumeration.
func (s *AdminService) Login(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	user, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.audit != nil {
		s.audit.Record(ctx, domain.AuditActionAdminLogin, nil, nil, user.Username)
	}

	return user, nil
}

// Dashboard computes the admin dashboard aggregate counts.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	today := Today()
	stats := &DashboardStats{}
	var err error

	if stats.TotalRides, err = s.rideRepo.Count(ctx, repository.RideCountFilter{}); err != nil {
		return nil, err
	}
	if stats.RidesToday, err = s.rideRepo.Count(ctx, repository.RideCountFilter{Date: today}); err != nil {
		return nil, err
	}
	if stats.UpcomingRides, err = s.rideRepo.Count(ctx, repository.RideCountFilter{DateAfter: today}); err != nil {
		return nil, err
	}
	if stats.ActiveRequests, err = s.requestRepo.Count(ctx, repository.RequestCountFilter{
		ActiveOnly: true,
		DateFrom:   today,
		Status:     string(domain.RequestStatusOpen),
	}); err != nil {
		return nil, err
	}
	if stats.RequestsToday, err = s.requestRepo.Count(ctx, repository.RequestCountFilter{Date: today}); err != nil {
		return nil, err
	}

	return stats, nil
}

// AuditLog returns the most recent audit entries, descending by timestamp.
func (s *AdminService) AuditLog(ctx context.Context) ([]*domain.AuditEntry, error) {
	return s.auditRepo.List(ctx, auditLogLimit)
}

// SeedAdmin creates the initial admin account when none exists. The
// password is stored only as a bcrypt hash.
func SeedAdmin(ctx context.Context, adminRepo repository.AdminUserRepository, username, password string) error {
	count, err := adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := adminRepo.Create(ctx, &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return err
	}

	log.Printf("seeded admin user %q", username)
	return nil
}
