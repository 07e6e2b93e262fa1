package addresses

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository persists addresses. Methods are scoped to the parent contact id;
// verifying that the contact itself belongs to the caller is the service
// layer's ownership gate and must happen first.
type Repository interface {
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	GetByID(ctx context.Context, contactID, addressID int64) (*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, contactID, addressID int64) error
	ListByContact(ctx context.Context, contactID int64) ([]*models.Address, error)
}
