// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an authenticated principal owning a private set of contacts.
// Token is the opaque session token; nil means the user is logged out.
type User struct {
	Username     string
	Name         string
	PasswordHash string
	Token        *string
	CreatedAt    time.Time
}
