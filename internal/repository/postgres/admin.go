package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/repository"
)

// AdminUserRepository is a PostgreSQL implementation of
// repository.AdminUserRepository.
type AdminUserRepository struct {
	db *sql.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sql.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByUsername retrieves an admin account by its unique username.
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	query := `SELECT id, username, password_hash FROM admin_users WHERE username = $1`

	var user domain.AdminUser
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create persists a new admin account.
func (r *AdminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `INSERT INTO admin_users (username, password_hash) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID)
}

// Count counts admin accounts.
func (r *AdminUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
