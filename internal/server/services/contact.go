package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
)

// ContactFields carries the writable fields of a contact. FirstName is
// required and validated before this layer runs; the rest are optional.
type ContactFields struct {
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
}

// Paging describes the page that a search returned. TotalPage is never
// below 1 so page 1 stays addressable even for an empty result set.
type Paging struct {
	CurrentPage int
	Size        int
	TotalPage   int
}

// Default pagination applied when the caller supplies no explicit values.
const (
	DefaultPage = 1
	DefaultSize = 10
)

// ContactService provides owner-scoped contact operations. Every method
// takes the resolved user; there is no way to reach a contact without one.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewContactService constructs a ContactService over the given pool and repositories.
func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

// Create persists a new contact owned by the given user.
func (s *ContactService) Create(ctx context.Context, user *models.User, fields ContactFields) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)

	contact, err := repo.Create(ctx, &models.Contact{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Username:  user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}

	return contact, nil
}

// Get returns the contact with the given id under the user, or
// ErrorNotFound. A contact owned by another user is reported exactly like a
// missing one.
func (s *ContactService) Get(ctx context.Context, user *models.User, id int64) (*models.Contact, error) {
	return s.repomanager.Contacts(s.db).GetByID(ctx, user.Username, id)
}

// Update overwrites all contact fields under the ownership gate. The scoped
// update runs in a transaction so a concurrent delete cannot interleave.
func (s *ContactService) Update(ctx context.Context, user *models.User, id int64, fields ContactFields) (*models.Contact, error) {
	contact := &models.Contact{
		ID:        id,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Username:  user.Username,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Contacts(tx).Update(ctx, contact)
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// Delete removes the contact under the ownership gate. Its addresses go
// with it via the schema's cascade.
func (s *ContactService) Delete(ctx context.Context, user *models.User, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Contacts(tx).Delete(ctx, user.Username, id)
	})
}

// Search returns one page of the user's contacts matching the filter, plus
// paging metadata computed from the total match count. A page beyond the
// data yields an empty slice, not an error.
func (s *ContactService) Search(ctx context.Context, user *models.User, filter contacts.SearchFilter, page, size int) ([]*models.Contact, *Paging, error) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}

	repo := s.repomanager.Contacts(s.db)

	total, err := repo.Count(ctx, user.Username, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("error counting contacts: %w", err)
	}

	items, err := repo.Search(ctx, user.Username, filter, size, (page-1)*size)
	if err != nil {
		return nil, nil, fmt.Errorf("error searching contacts: %w", err)
	}

	totalPage := int((total + int64(size) - 1) / int64(size))
	if totalPage < 1 {
		totalPage = 1
	}

	return items, &Paging{CurrentPage: page, Size: size, TotalPage: totalPage}, nil
}
