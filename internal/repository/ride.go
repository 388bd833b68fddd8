package repository

import (
	"context"

	"github.com/dmedarov/villageride/internal/domain"
)

// RideFilter restricts a ride listing. Zero-valued fields are ignored;
// supplied fields combine with AND. The store applies predicates only and
// returns rows in insertion order. Ordering and caps belong to the
// listing service.
type RideFilter struct {
	ActiveOnly   bool
	DateFrom     string // inclusive lower bound, ISO date
	Date         string // exact match
	FromContains string // case-insensitive substring on from_location
	ToContains   string // case-insensitive substring on to_location
	RideType     string // exact match
}

// RideCountFilter restricts a ride count.
type RideCountFilter struct {
	Date      string // exact match
	DateAfter string // strictly greater than
}

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride, assigning its ID, UTC timestamps and
	// lifecycle defaults on the passed struct.
	Create(ctx context.Context, ride *domain.Ride) (int64, error)

	// List retrieves rides matching the filter in insertion order.
	List(ctx context.Context, filter RideFilter) ([]*domain.Ride, error)

	// Count counts rides matching the filter.
	Count(ctx context.Context, filter RideCountFilter) (int, error)
}
