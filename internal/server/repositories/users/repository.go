package users

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository persists users and their session tokens.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	UpdateToken(ctx context.Context, username string, token *string) error
	UpdateProfile(ctx context.Context, user *models.User) error
}
