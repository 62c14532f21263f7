package entity

import "time"

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password.
// IsAdmin is the single source of truth for admin access; the ADMIN_EMAIL
// environment variable is only consulted once, by the seed command.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
