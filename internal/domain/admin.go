package domain

// AdminUser represents a moderation panel account.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
}
