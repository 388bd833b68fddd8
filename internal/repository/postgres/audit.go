package postgres

import (
	"context"
	"database/sql"

	"github.com/dmedarov/villageride/internal/domain"
)

// AuditLogRepository is a PostgreSQL implementation of
// repository.AuditLogRepository.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new AuditLogRepository.
func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Insert persists one audit entry.
func (r *AuditLogRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	var adminUser sql.NullString
	if entry.AdminUser != "" {
		adminUser = sql.NullString{String: entry.AdminUser, Valid: true}
	}

	query := `
		INSERT INTO audit_logs (timestamp, action, ride_id, request_id, admin_user)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		formatTimestamp(entry.Timestamp),
		entry.Action,
		nullInt(entry.RideID),
		nullInt(entry.RequestID),
		adminUser,
	).Scan(&entry.ID)
}

// List retrieves the most recent entries, descending by timestamp.
func (r *AuditLogRepository) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, timestamp, action, ride_id, request_id, admin_user
		FROM audit_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var ts string
		var rideID, requestID sql.NullInt64
		var adminUser sql.NullString

		if err := rows.Scan(&entry.ID, &ts, &entry.Action, &rideID, &requestID, &adminUser); err != nil {
			return nil, err
		}

		if entry.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		if rideID.Valid {
			id := rideID.Int64
			entry.RideID = &id
		}
		if requestID.Valid {
			id := requestID.Int64
			entry.RequestID = &id
		}
		if adminUser.Valid {
			entry.AdminUser = adminUser.String
		}

		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// nullInt converts an optional record id for storage.
func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
