package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, driver, phone, from_location, to_location, date, time, seats, ride_type, from_lat, from_lng, to_lat, to_lng, is_active, is_flagged, created_at, updated_at`

// Create persists a new ride and assigns its ID, timestamps and lifecycle
// defaults on the passed struct.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) (int64, error) {
	now := time.Now().UTC().Truncate(time.Second)
	ride.IsActive = true
	ride.IsFlagged = false
	ride.CreatedAt = now
	ride.UpdatedAt = now

	query := `
		INSERT INTO rides (
			driver, phone, from_location, to_location,
			date, time, seats, ride_type,
			from_lat, from_lng, to_lat, to_lng,
			is_active, is_flagged, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	err := r.q.QueryRowContext(ctx, query,
		ride.Driver,
		ride.Phone,
		ride.FromLocation,
		ride.ToLocation,
		ride.Date,
		ride.Time,
		ride.Seats,
		ride.RideType,
		nullFloat(ride.FromLat),
		nullFloat(ride.FromLng),
		nullFloat(ride.ToLat),
		nullFloat(ride.ToLng),
		ride.IsActive,
		ride.IsFlagged,
		formatTimestamp(ride.CreatedAt),
		formatTimestamp(ride.UpdatedAt),
	).Scan(&ride.ID)
	if err != nil {
		return 0, err
	}

	return ride.ID, nil
}

// List retrieves rides matching the filter. Rows come back in insertion
// (id) order; ordering and caps are the listing service's responsibility.
func (r *RideRepository) List(ctx context.Context, filter repository.RideFilter) ([]*domain.Ride, error) {
	where, args := rideWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM rides%s ORDER BY id ASC`, rideColumns, where)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Count counts rides matching the filter.
func (r *RideRepository) Count(ctx context.Context, filter repository.RideCountFilter) (int, error) {
	var clauses []string
	var args []any

	if filter.Date != "" {
		args = append(args, filter.Date)
		clauses = append(clauses, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.DateAfter != "" {
		args = append(args, filter.DateAfter)
		clauses = append(clauses, fmt.Sprintf("date > $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM rides`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	var count int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// rideWhere translates a filter into a WHERE clause and its arguments.
func rideWhere(filter repository.RideFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		clauses = append(clauses, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.FromContains != "" {
		args = append(args, "%"+filter.FromContains+"%")
		clauses = append(clauses, fmt.Sprintf("from_location ILIKE $%d", len(args)))
	}
	if filter.ToContains != "" {
		args = append(args, "%"+filter.ToContains+"%")
		clauses = append(clauses, fmt.Sprintf("to_location ILIKE $%d", len(args)))
	}
	if filter.RideType != "" {
		args = append(args, filter.RideType)
		clauses = append(clauses, fmt.Sprintf("ride_type = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanRide scans one ride row.
func scanRide(rows *sql.Rows) (*domain.Ride, error) {
	var ride domain.Ride
	var fromLat, fromLng, toLat, toLng sql.NullFloat64
	var createdAt, updatedAt string

	if err := rows.Scan(
		&ride.ID,
		&ride.Driver,
		&ride.Phone,
		&ride.FromLocation,
		&ride.ToLocation,
		&ride.Date,
		&ride.Time,
		&ride.Seats,
		&ride.RideType,
		&fromLat,
		&fromLng,
		&toLat,
		&toLng,
		&ride.IsActive,
		&ride.IsFlagged,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	ride.FromLat = floatPtr(fromLat)
	ride.FromLng = floatPtr(fromLng)
	ride.ToLat = floatPtr(toLat)
	ride.ToLng = floatPtr(toLng)

	var err error
	if ride.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if ride.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}

	return &ride, nil
}
