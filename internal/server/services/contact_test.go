package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	contactsrepo "github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
)

func TestContactCreate_OwnedByCaller(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeContactsRepo{}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	user := &models.User{Username: "test1"}
	got, err := s.Create(context.Background(), user, ContactFields{
		FirstName: "test",
		LastName:  strptr("1"),
		Email:     strptr("test1@example.com"),
		Phone:     strptr("555"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Username != "test1" {
		t.Fatalf("contact must be owned by the caller, got %q", got.Username)
	}
	if got.ID == 0 {
		t.Fatal("contact id not assigned")
	}
}

func TestContactGet_CrossTenantIsNotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeContactsRepo{items: []*models.Contact{
		{ID: 7, FirstName: "test", Username: "test1"},
	}}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	// The owner sees the contact.
	if _, err := s.Get(context.Background(), &models.User{Username: "test1"}, 7); err != nil {
		t.Fatalf("owner Get error: %v", err)
	}

	// Another principal gets NotFound, indistinguishable from absence.
	_, err := s.Get(context.Background(), &models.User{Username: "test2"}, 7)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestContactUpdate_FullOverwrite(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeContactsRepo{items: []*models.Contact{
		{ID: 7, FirstName: "test", LastName: strptr("1"), Email: strptr("a@b.c"), Username: "test1"},
	}}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	got, err := s.Update(context.Background(), &models.User{Username: "test1"}, 7,
		ContactFields{FirstName: "updated"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.FirstName != "updated" {
		t.Fatalf("unexpected contact: %+v", got)
	}
	// Absent optional fields are overwritten with nil, not preserved.
	if got.LastName != nil || got.Email != nil {
		t.Fatalf("expected full-field overwrite, got %+v", got)
	}
}

func TestContactUpdate_CrossTenantIsNotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeContactsRepo{items: []*models.Contact{
		{ID: 7, FirstName: "test", Username: "test1"},
	}}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	_, err := s.Update(context.Background(), &models.User{Username: "test2"}, 7,
		ContactFields{FirstName: "updated"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestContactDelete_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeContactsRepo{items: []*models.Contact{
		{ID: 7, FirstName: "test", Username: "test1"},
	}}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	if err := s.Delete(context.Background(), &models.User{Username: "test1"}, 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("contact not removed")
	}
}

func TestContactDelete_MissingIsNotFound(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := NewContactService(db, &fakeRepoManager{c: &fakeContactsRepo{}})

	err := s.Delete(context.Background(), &models.User{Username: "test1"}, 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSearch_DefaultsApplied(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeContactsRepo{countOut: 0}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	_, paging, err := s.Search(context.Background(), &models.User{Username: "test1"},
		contactsrepo.SearchFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if paging.CurrentPage != DefaultPage || paging.Size != DefaultSize {
		t.Fatalf("defaults not applied: %+v", paging)
	}
	if repo.lastLimit != DefaultSize || repo.lastOffset != 0 {
		t.Fatalf("unexpected limit/offset: %d/%d", repo.lastLimit, repo.lastOffset)
	}
}

func TestSearch_EmptyResultStillPageOne(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeContactsRepo{countOut: 0}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	items, paging, err := s.Search(context.Background(), &models.User{Username: "test1"},
		contactsrepo.SearchFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if paging.TotalPage != 1 {
		t.Fatalf("total page must stay 1 for an empty result, got %d", paging.TotalPage)
	}
}

func TestSearch_PageBeyondData(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// One matching contact, but page 2 of size 1 is past the data: the
	// call still succeeds with real totals.
	repo := &fakeContactsRepo{countOut: 1}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	items, paging, err := s.Search(context.Background(), &models.User{Username: "test1"},
		contactsrepo.SearchFilter{}, 2, 1)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if paging.CurrentPage != 2 || paging.Size != 1 || paging.TotalPage != 1 {
		t.Fatalf("unexpected paging: %+v", paging)
	}
	if repo.lastOffset != 1 {
		t.Fatalf("expected offset 1, got %d", repo.lastOffset)
	}
}

func TestSearch_TotalPageCeil(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	tests := []struct {
		total    int64
		size     int
		expected int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{21, 10, 3},
		{5, 1, 5},
	}

	for _, tt := range tests {
		repo := &fakeContactsRepo{countOut: tt.total}
		s := NewContactService(db, &fakeRepoManager{c: repo})

		_, paging, err := s.Search(context.Background(), &models.User{Username: "test1"},
			contactsrepo.SearchFilter{}, 1, tt.size)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if paging.TotalPage != tt.expected {
			t.Fatalf("total=%d size=%d: expected %d pages, got %d",
				tt.total, tt.size, tt.expected, paging.TotalPage)
		}
	}
}

func TestSearch_FilterPassedThrough(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeContactsRepo{
		countOut: 1,
		searchOut: []*models.Contact{
			{ID: 1, FirstName: "test", LastName: strptr("1"), Username: "test1"},
		},
	}
	s := NewContactService(db, &fakeRepoManager{c: repo})

	filter := contactsrepo.SearchFilter{Name: strptr("es")}
	items, _, err := s.Search(context.Background(), &models.User{Username: "test1"}, filter, 1, 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if repo.lastFilter.Name == nil || *repo.lastFilter.Name != "es" {
		t.Fatalf("filter not passed through: %+v", repo.lastFilter)
	}
}
