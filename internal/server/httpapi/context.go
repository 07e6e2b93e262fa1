package httpapi

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type contextKey int

const userContextKey contextKey = iota

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user stored by the Authenticate middleware.
// The second result is false on routes that never passed through it.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
