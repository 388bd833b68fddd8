package repository

import (
	"context"

	"github.com/dmedarov/villageride/internal/domain"
)

// AdminUserRepository defines the persistence operations for admin accounts.
type AdminUserRepository interface {
	// GetByUsername retrieves an admin account by its unique username.
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)

	// Create persists a new admin account.
	Create(ctx context.Context, user *domain.AdminUser) error

	// Count counts admin accounts. Used by the startup seed.
	Count(ctx context.Context) (int, error)
}
