package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository persists contacts. Every method takes the owning username and
// scopes its statement to it, so an id belonging to another user is
// indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	GetByID(ctx context.Context, username string, id int64) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, username string, id int64) error
	Search(ctx context.Context, username string, filter SearchFilter, limit, offset int) ([]*models.Contact, error)
	Count(ctx context.Context, username string, filter SearchFilter) (int64, error)
}
