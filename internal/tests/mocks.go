package tests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of repository.RideRepository.
type MockRideRepository struct {
	mu     sync.RWMutex
	rides  []*domain.Ride
	nextID int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	ListError   error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{nextID: 1}
}

// AddRide seeds a ride, bypassing creation defaults.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ride.ID == 0 {
		ride.ID = m.nextID
	}
	if ride.ID >= m.nextID {
		m.nextID = ride.ID + 1
	}
	m.rides = append(m.rides, ride)
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) (int64, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	ride.ID = m.nextID
	m.nextID++
	ride.IsActive = true
	ride.IsFlagged = false
	ride.CreatedAt = now
	ride.UpdatedAt = now

	copy := *ride
	m.rides = append(m.rides, &copy)
	return ride.ID, nil
}

func (m *MockRideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Ride
	for _, r := range m.rides {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.DateFrom != "" && r.Date < filter.DateFrom {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.FromContains != "" && !containsFold(r.FromLocation, filter.FromContains) {
			continue
		}
		if filter.ToContains != "" && !containsFold(r.ToLocation, filter.ToContains) {
			continue
		}
		if filter.RideType != "" && r.RideType != filter.RideType {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideRepository) Count(ctx context.Context, filter repository.RideCountFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.rides {
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.DateAfter != "" && r.Date <= filter.DateAfter {
			continue
		}
		count++
	}
	return count, nil
}

// GetRide returns a stored ride for test assertions.
func (m *MockRideRepository) GetRide(id int64) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rides {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDE REQUEST REPOSITORY
// ──────────────────────────────────────────────

// MockRideRequestRepository is a mock implementation of
// repository.RideRequestRepository.
type MockRideRequestRepository struct {
	mu       sync.RWMutex
	requests []*domain.RideRequest
	nextID   int64

	CreateCallCount int32

	CreateError error
	ListError   error
}

// NewMockRideRequestRepository creates a new mock ride request repository.
func NewMockRideRequestRepository() *MockRideRequestRepository {
	return &MockRideRequestRepository{nextID: 1}
}

// AddRequest seeds a ride request, bypassing creation defaults.
func (m *MockRideRequestRepository) AddRequest(req *domain.RideRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == 0 {
		req.ID = m.nextID
	}
	if req.ID >= m.nextID {
		m.nextID = req.ID + 1
	}
	m.requests = append(m.requests, req)
}

func (m *MockRideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) (int64, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Second)
	req.ID = m.nextID
	m.nextID++
	req.Status = domain.RequestStatusOpen
	req.IsActive = true
	req.IsFlagged = false
	req.CreatedAt = now
	req.UpdatedAt = now

	copy := *req
	m.requests = append(m.requests, &copy)
	return req.ID, nil
}

func (m *MockRideRequestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]*domain.RideRequest, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.RideRequest
	for _, r := range m.requests {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.DateFrom != "" && r.Date < filter.DateFrom {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.FromContains != "" && !containsFold(r.FromLocation, filter.FromContains) {
			continue
		}
		if filter.ToContains != "" && !containsFold(r.ToLocation, filter.ToContains) {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideRequestRepository) Count(ctx context.Context, filter repository.RequestCountFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.requests {
		if filter.ActiveOnly && !r.IsActive {
			continue
		}
		if filter.DateFrom != "" && r.Date < filter.DateFrom {
			continue
		}
		if filter.Date != "" && r.Date != filter.Date {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

// GetRequest returns a stored request for test assertions.
func (m *MockRideRequestRepository) GetRequest(id int64) *domain.RideRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK ADMIN USER REPOSITORY
// ──────────────────────────────────────────────

// MockAdminUserRepository is a mock implementation of
// repository.AdminUserRepository.
type MockAdminUserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.AdminUser
	nextID int64

	CreateError error
}

// NewMockAdminUserRepository creates a new mock admin user repository.
func NewMockAdminUserRepository() *MockAdminUserRepository {
	return &MockAdminUserRepository{users: make(map[string]*domain.AdminUser), nextID: 1}
}

func (m *MockAdminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.nextID
	m.nextID++
	copy := *user
	m.users[user.Username] = &copy
	return nil
}

func (m *MockAdminUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// ──────────────────────────────────────────────
// MOCK AUDIT LOG REPOSITORY
// ──────────────────────────────────────────────

// MockAuditLogRepository is a mock implementation of
// repository.AuditLogRepository.
type MockAuditLogRepository struct {
	mu      sync.RWMutex
	entries []*domain.AuditEntry
	nextID  int64

	InsertCallCount int32

	InsertError error
}

// NewMockAuditLogRepository creates a new mock audit log repository.
func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{nextID: 1}
}

func (m *MockAuditLogRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.nextID
	m.nextID++
	copy := *entry
	m.entries = append(m.entries, &copy)
	return nil
}

func (m *MockAuditLogRepository) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*domain.AuditEntry, 0, len(m.entries))
	for _, e := range m.entries {
		copy := *e
		result = append(result, &copy)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Entries returns the recorded entries in insertion order.
func (m *MockAuditLogRepository) Entries() []*domain.AuditEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.AuditEntry, len(m.entries))
	for i, e := range m.entries {
		copy := *e
		result[i] = &copy
	}
	return result
}

// containsFold reports case-insensitive substring containment, mirroring
// the store's ILIKE predicate.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
