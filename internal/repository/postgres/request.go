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

// RideRequestRepository is a PostgreSQL implementation of
// repository.RideRequestRepository.
type RideRequestRepository struct {
	q Querier
}

// NewRideRequestRepository creates a new PostgreSQL ride request repository.
func NewRideRequestRepository(db *sql.DB) *RideRequestRepository {
	return &RideRequestRepository{q: db}
}

// NewRideRequestRepositoryWithTx creates a ride request repository using a
// transaction.
func NewRideRequestRepositoryWithTx(tx *sql.Tx) *RideRequestRepository {
	return &RideRequestRepository{q: tx}
}

const requestColumns = `id, passenger, phone, from_location, to_location, date, time, time_flex, people_count, note, from_lat, from_lng, to_lat, to_lng, status, is_active, is_flagged, created_at, updated_at`

// Create persists a new ride request and assigns its ID, timestamps,
// lifecycle defaults and the initial "open" status on the passed struct.
func (r *RideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) (int64, error) {
	now := time.Now().UTC().Truncate(time.Second)
	req.Status = domain.RequestStatusOpen
	req.IsActive = true
	req.IsFlagged = false
	req.CreatedAt = now
	req.UpdatedAt = now

	var note sql.NullString
	if req.Note != "" {
		note = sql.NullString{String: req.Note, Valid: true}
	}

	query := `
		INSERT INTO ride_requests (
			passenger, phone, from_location, to_location,
			date, time, time_flex, people_count, note,
			from_lat, from_lng, to_lat, to_lng,
			status, is_active, is_flagged, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`

	err := r.q.QueryRowContext(ctx, query,
		req.Passenger,
		req.Phone,
		req.FromLocation,
		req.ToLocation,
		req.Date,
		req.Time,
		req.TimeFlex,
		req.PeopleCount,
		note,
		nullFloat(req.FromLat),
		nullFloat(req.FromLng),
		nullFloat(req.ToLat),
		nullFloat(req.ToLng),
		req.Status,
		req.IsActive,
		req.IsFlagged,
		formatTimestamp(req.CreatedAt),
		formatTimestamp(req.UpdatedAt),
	).Scan(&req.ID)
	if err != nil {
		return 0, err
	}

	return req.ID, nil
}

// List retrieves ride requests matching the filter in insertion order.
func (r *RideRequestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]*domain.RideRequest, error) {
	where, args := requestWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM ride_requests%s ORDER BY id ASC`, requestColumns, where)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.RideRequest
	for rows.Next() {
		req, err := scanRideRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Count counts ride requests matching the filter.
func (r *RideRequestRepository) Count(ctx context.Context, filter repository.RequestCountFilter) (int, error) {
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
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM ride_requests`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	var count int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// requestWhere translates a filter into a WHERE clause and its arguments.
func requestWhere(filter repository.RequestFilter) (string, []any) {
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
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanRideRequest scans one ride request row.
func scanRideRequest(rows *sql.Rows) (*domain.RideRequest, error) {
	var req domain.RideRequest
	var note sql.NullString
	var fromLat, fromLng, toLat, toLng sql.NullFloat64
	var createdAt, updatedAt string

	if err := rows.Scan(
		&req.ID,
		&req.Passenger,
		&req.Phone,
		&req.FromLocation,
		&req.ToLocation,
		&req.Date,
		&req.Time,
		&req.TimeFlex,
		&req.PeopleCount,
		&note,
		&fromLat,
		&fromLng,
		&toLat,
		&toLng,
		&req.Status,
		&req.IsActive,
		&req.IsFlagged,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if note.Valid {
		req.Note = note.String
	}
	req.FromLat = floatPtr(fromLat)
	req.FromLng = floatPtr(fromLng)
	req.ToLat = floatPtr(toLat)
	req.ToLng = floatPtr(toLng)

	var err error
	if req.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if req.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}

	return &req, nil
}
