package entity

import "time"

// Category labels bills. A category referenced by any bill cannot be
// deleted; the guard lives in the category service.
type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
