package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// AddressFields carries the writable fields of an address; all optional.
type AddressFields struct {
	Street     *string
	City       *string
	Province   *string
	Country    *string
	PostalCode *string
}

// AddressService provides address operations behind the contact ownership
// gate: the parent contact must belong to the calling user before anything
// touches an address row. A contact that is missing, or owned by someone
// else, or an address under a different contact all surface as the same
// ErrorNotFound.
type AddressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAddressService constructs an AddressService over the given pool and repositories.
func NewAddressService(db *sql.DB, m repomanager.RepositoryManager) *AddressService {
	return &AddressService{db: db, repomanager: m}
}

// Create inserts an address under a contact the user owns. The gate and the
// insert share one transaction so the contact cannot be deleted in between.
func (s *AddressService) Create(ctx context.Context, user *models.User, contactID int64, fields AddressFields) (*models.Address, error) {
	var address *models.Address

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Contacts(tx).GetByID(ctx, user.Username, contactID); err != nil {
			return err
		}

		var err error
		address, err = s.repomanager.Addresses(tx).Create(ctx, &models.Address{
			Street:     fields.Street,
			City:       fields.City,
			Province:   fields.Province,
			Country:    fields.Country,
			PostalCode: fields.PostalCode,
			ContactID:  contactID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Get returns the address after passing the contact ownership gate.
func (s *AddressService) Get(ctx context.Context, user *models.User, contactID, addressID int64) (*models.Address, error) {
	if _, err := s.repomanager.Contacts(s.db).GetByID(ctx, user.Username, contactID); err != nil {
		return nil, err
	}

	return s.repomanager.Addresses(s.db).GetByID(ctx, contactID, addressID)
}

// Update overwrites all address fields after the ownership gate, in one
// transaction.
func (s *AddressService) Update(ctx context.Context, user *models.User, contactID, addressID int64, fields AddressFields) (*models.Address, error) {
	address := &models.Address{
		ID:         addressID,
		Street:     fields.Street,
		City:       fields.City,
		Province:   fields.Province,
		Country:    fields.Country,
		PostalCode: fields.PostalCode,
		ContactID:  contactID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Contacts(tx).GetByID(ctx, user.Username, contactID); err != nil {
			return err
		}
		return s.repomanager.Addresses(tx).Update(ctx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Delete removes the address after the ownership gate, in one transaction.
func (s *AddressService) Delete(ctx context.Context, user *models.User, contactID, addressID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Contacts(tx).GetByID(ctx, user.Username, contactID); err != nil {
			return err
		}
		return s.repomanager.Addresses(tx).Delete(ctx, contactID, addressID)
	})
}

// List returns every address of a contact the user owns, ordered by id.
func (s *AddressService) List(ctx context.Context, user *models.User, contactID int64) ([]*models.Address, error) {
	if _, err := s.repomanager.Contacts(s.db).GetByID(ctx, user.Username, contactID); err != nil {
		return nil, err
	}

	return s.repomanager.Addresses(s.db).ListByContact(ctx, contactID)
}
