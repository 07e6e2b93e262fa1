package models

import "time"

// Contact belongs to exactly one user for its whole lifetime. Only
// FirstName is required; the remaining fields are optional.
type Contact struct {
	ID        int64
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	Username  string
	CreatedAt time.Time
}
