package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations holds the schema DDL, applied once at startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS rides (
		id BIGSERIAL PRIMARY KEY,
		driver TEXT NOT NULL,
		phone TEXT NOT NULL,
		from_location TEXT NOT NULL,
		to_location TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		seats INTEGER NOT NULL,
		ride_type TEXT NOT NULL,
		from_lat DOUBLE PRECISION,
		from_lng DOUBLE PRECISION,
		to_lat DOUBLE PRECISION,
		to_lng DOUBLE PRECISION,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_date ON rides(date)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_from_to ON rides(from_location, to_location)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_type ON rides(ride_type)`,

	`CREATE TABLE IF NOT EXISTS ride_requests (
		id BIGSERIAL PRIMARY KEY,
		passenger TEXT NOT NULL,
		phone TEXT NOT NULL,
		from_location TEXT NOT NULL,
		to_location TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		time_flex TEXT NOT NULL,
		people_count INTEGER NOT NULL,
		note TEXT,
		from_lat DOUBLE PRECISION,
		from_lng DOUBLE PRECISION,
		to_lat DOUBLE PRECISION,
		to_lng DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'open',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_date_status ON ride_requests(date, status)`,
	`CREATE INDEX IF NOT EXISTS idx_requests_from_to ON ride_requests(from_location, to_location)`,

	`CREATE TABLE IF NOT EXISTS admin_users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		timestamp TEXT NOT NULL,
		action TEXT NOT NULL,
		ride_id BIGINT,
		request_id BIGINT,
		admin_user TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp)`,
}

// Migrate applies the schema. It runs once at startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
