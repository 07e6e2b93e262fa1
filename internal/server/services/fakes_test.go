package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	addressesrepo "github.com/dmitrijs2005/contactbook/internal/server/repositories/addresses"
	contactsrepo "github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	usersrepo "github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
)

// --- helpers ---

func strptr(s string) *string { return &s }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake users repository ---

type fakeUsersRepo struct {
	countOut int64
	countErr error

	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	tokenErr      error
	lastTokenUser string
	lastToken     *string
	tokenCalls    int

	profileErr  error
	lastProfile *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	return f.countOut, f.countErr
}

func (f *fakeUsersRepo) UpdateToken(ctx context.Context, username string, token *string) error {
	f.tokenCalls++
	f.lastTokenUser = username
	f.lastToken = token
	return f.tokenErr
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	f.lastProfile = user
	return f.profileErr
}

// --- fake contacts repository ---

// fakeContactsRepo keeps contacts in memory and applies the same owner
// scoping contract as the real repository: an id under another owner is
// reported as missing.
type fakeContactsRepo struct {
	items []*models.Contact

	createErr error

	countOut int64
	countErr error

	searchOut  []*models.Contact
	searchErr  error
	lastLimit  int
	lastOffset int
	lastFilter contactsrepo.SearchFilter
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = int64(len(f.items) + 1)
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeContactsRepo) find(username string, id int64) int {
	for i, c := range f.items {
		if c.ID == id && c.Username == username {
			return i
		}
	}
	return -1
}

func (f *fakeContactsRepo) GetByID(ctx context.Context, username string, id int64) (*models.Contact, error) {
	if i := f.find(username, id); i >= 0 {
		return f.items[i], nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeContactsRepo) Update(ctx context.Context, c *models.Contact) error {
	if i := f.find(c.Username, c.ID); i >= 0 {
		f.items[i] = c
		return nil
	}
	return common.ErrorNotFound
}

func (f *fakeContactsRepo) Delete(ctx context.Context, username string, id int64) error {
	if i := f.find(username, id); i >= 0 {
		f.items = append(f.items[:i], f.items[i+1:]...)
		return nil
	}
	return common.ErrorNotFound
}

func (f *fakeContactsRepo) Search(ctx context.Context, username string, filter contactsrepo.SearchFilter, limit, offset int) ([]*models.Contact, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	f.lastOffset = offset
	return f.searchOut, f.searchErr
}

func (f *fakeContactsRepo) Count(ctx context.Context, username string, filter contactsrepo.SearchFilter) (int64, error) {
	return f.countOut, f.countErr
}

// --- fake addresses repository ---

type fakeAddressesRepo struct {
	items []*models.Address

	createErr error
	listErr   error
}

func (f *fakeAddressesRepo) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = int64(len(f.items) + 1)
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAddressesRepo) find(contactID, addressID int64) int {
	for i, a := range f.items {
		if a.ID == addressID && a.ContactID == contactID {
			return i
		}
	}
	return -1
}

func (f *fakeAddressesRepo) GetByID(ctx context.Context, contactID, addressID int64) (*models.Address, error) {
	if i := f.find(contactID, addressID); i >= 0 {
		return f.items[i], nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAddressesRepo) Update(ctx context.Context, a *models.Address) error {
	if i := f.find(a.ContactID, a.ID); i >= 0 {
		f.items[i] = a
		return nil
	}
	return common.ErrorNotFound
}

func (f *fakeAddressesRepo) Delete(ctx context.Context, contactID, addressID int64) error {
	if i := f.find(contactID, addressID); i >= 0 {
		f.items = append(f.items[:i], f.items[i+1:]...)
		return nil
	}
	return common.ErrorNotFound
}

func (f *fakeAddressesRepo) ListByContact(ctx context.Context, contactID int64) ([]*models.Address, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Address
	for _, a := range f.items {
		if a.ContactID == contactID {
			result = append(result, a)
		}
	}
	return result, nil
}

// --- fake repo manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeContactsRepo
	a *fakeAddressesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository { return m.c }

func (m *fakeRepoManager) Addresses(db dbx.DBTX) addressesrepo.Repository { return m.a }
