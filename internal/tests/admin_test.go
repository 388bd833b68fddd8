package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/service"
)

// ──────────────────────────────────────────────
// 4. ADMIN AUTHENTICATION AND DASHBOARD
// ──────────────────────────────────────────────

func newAdminFixture(t *testing.T) (*MockAdminUserRepository, *MockRideRepository, *MockRideRequestRepository, *MockAuditLogRepository, *service.AdminService) {
	t.Helper()

	adminRepo := NewMockAdminUserRepository()
	rideRepo := NewMockRideRepository()
	requestRepo := NewMockRideRequestRepository()
	auditRepo := NewMockAuditLogRepository()
	svc := service.NewAdminService(adminRepo, auditRepo, rideRepo, requestRepo, service.NewAuditRecorder(auditRepo))
	return adminRepo, rideRepo, requestRepo, auditRepo, svc
}

func seedAdminUser(t *testing.T, repo *MockAdminUserRepository, username, password string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := repo.Create(context.Background(), &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}
}

func TestLogin_ValidCredentials_Succeeds(t *testing.T) {
	t.Parallel()

	adminRepo, _, _, auditRepo, svc := newAdminFixture(t)
	seedAdminUser(t, adminRepo, "admin", "correct horse")

	user, err := svc.Login(context.Background(), "admin", "correct horse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("expected username admin, got %s", user.Username)
	}

	entries := auditRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != domain.AuditActionAdminLogin || entries[0].AdminUser != "admin" {
		t.Errorf("unexpected audit entry: %+v", entries[0])
	}
}

func TestLogin_BadCredentials_ReturnsGenericError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "unknown user", username: "nobody", password: "correct horse"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			adminRepo, _, _, auditRepo, svc := newAdminFixture(t)
			seedAdminUser(t, adminRepo, "admin", "correct horse")

			_, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, service.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
			}
			if len(auditRepo.Entries()) != 0 {
				t.Error("expected no audit entry for a failed login")
			}
		})
	}
}

func TestSeedAdmin_CreatesUserOnce(t *testing.T) {
	t.Parallel()

	adminRepo := NewMockAdminUserRepository()

	if err := service.SeedAdmin(context.Background(), adminRepo, "admin", "secret"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	user, err := adminRepo.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("expected the admin user to exist, got: %v", err)
	}
	if user.PasswordHash == "secret" {
		t.Error("expected the password to be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("expected the hash to verify: %v", err)
	}

	// A second startup must not replace the existing account.
	if err := service.SeedAdmin(context.Background(), adminRepo, "admin", "different"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	again, _ := adminRepo.GetByUsername(context.Background(), "admin")
	if again.PasswordHash != user.PasswordHash {
		t.Error("expected the seeded hash to be unchanged")
	}
}

func TestDashboard_ComputesCounts(t *testing.T) {
	t.Parallel()

	_, rideRepo, requestRepo, _, svc := newAdminFixture(t)

	today := service.Today()
	seedRide(rideRepo, domain.Ride{Date: yesterday(), IsActive: true})
	seedRide(rideRepo, domain.Ride{Date: today, IsActive: true})
	seedRide(rideRepo, domain.Ride{Date: tomorrow(), IsActive: true})
	seedRide(rideRepo, domain.Ride{Date: tomorrowPlus(2), IsActive: false})

	seedRequest(requestRepo, domain.RideRequest{Date: today, IsActive: true})
	seedRequest(requestRepo, domain.RideRequest{Date: tomorrow(), IsActive: true, Status: domain.RequestStatusClosed})
	seedRequest(requestRepo, domain.RideRequest{Date: yesterday(), IsActive: true})

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stats.TotalRides != 4 {
		t.Errorf("expected 4 total rides, got %d", stats.TotalRides)
	}
	if stats.RidesToday != 1 {
		t.Errorf("expected 1 ride today, got %d", stats.RidesToday)
	}
	if stats.UpcomingRides != 2 {
		t.Errorf("expected 2 upcoming rides, got %d", stats.UpcomingRides)
	}
	if stats.ActiveRequests != 1 {
		t.Errorf("expected 1 active request, got %d", stats.ActiveRequests)
	}
	if stats.RequestsToday != 1 {
		t.Errorf("expected 1 request today, got %d", stats.RequestsToday)
	}
}

func TestAuditLog_ReturnsNewestFirst(t *testing.T) {
	t.Parallel()

	_, _, _, auditRepo, svc := newAdminFixture(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		if err := auditRepo.Insert(context.Background(), &domain.AuditEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Action:    domain.AuditActionOfferRide,
		}); err != nil {
			t.Fatalf("failed to seed audit entry: %v", err)
		}
	}

	entries, err := svc.AuditLog(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Errorf("expected descending timestamps, got %v before %v", entries[i-1].Timestamp, entries[i].Timestamp)
		}
	}
}
