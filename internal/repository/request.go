package repository

import (
	"context"

	"github.com/dmedarov/villageride/internal/domain"
)

// RequestFilter restricts a ride-request listing. Same semantics as
// RideFilter, with an additional exact status predicate.
type RequestFilter struct {
	ActiveOnly   bool
	DateFrom     string
	Date         string
	FromContains string
	ToContains   string
	Status       string
}

// RequestCountFilter restricts a ride-request count.
type RequestCountFilter struct {
	ActiveOnly bool
	DateFrom   string
	Date       string
	Status     string
}

// RideRequestRepository defines the persistence operations for ride requests.
type RideRequestRepository interface {
	// Create persists a new ride request, assigning its ID, UTC timestamps,
	// lifecycle defaults and the initial "open" status on the passed struct.
	Create(ctx context.Context, req *domain.RideRequest) (int64, error)

	// List retrieves ride requests matching the filter in insertion order.
	List(ctx context.Context, filter RequestFilter) ([]*domain.RideRequest, error)

	// Count counts ride requests matching the filter.
	Count(ctx context.Context, filter RequestCountFilter) (int, error)
}
