package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}

func withFixedToken(t *testing.T, token string) {
	t.Helper()
	orig := newToken
	newToken = func() string { return token }
	t.Cleanup(func() { newToken = orig })
}

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{u: &fakeUsersRepo{countOut: 0}}
	s := NewUserService(db, rm)

	user, err := s.Register(context.Background(), "test1", "test1", "test1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Username != "test1" || user.Name != "test1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("test1")) != nil {
		t.Fatal("stored hash does not verify against the plaintext password")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{countOut: 1}}
	s := NewUserService(db, rm)

	_, err := s.Register(context.Background(), "test1", "test1", "test1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("tx expectations: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	withFixedToken(t, "tok-fixed")

	repo := &fakeUsersRepo{
		getOut: &models.User{Username: "test1", Name: "test1", PasswordHash: mustHash(t, "test1")},
	}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	user, token, err := s.Login(context.Background(), "test1", "test1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token != "tok-fixed" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Token == nil || *user.Token != "tok-fixed" {
		t.Fatalf("token not set on user: %+v", user)
	}
	if repo.lastTokenUser != "test1" || repo.lastToken == nil || *repo.lastToken != "tok-fixed" {
		t.Fatalf("token not persisted: user=%q token=%v", repo.lastTokenUser, repo.lastToken)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{
		getOut: &models.User{Username: "test1", PasswordHash: mustHash(t, "test1")},
	}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	_, _, err := s.Login(context.Background(), "test1", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
	if repo.tokenCalls != 0 {
		t.Fatal("no token must be persisted on failed login")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// Unknown username and wrong password produce the same error kind.
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	_, _, err := s.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestResolve_EmptyToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewUserService(db, &fakeRepoManager{u: &fakeUsersRepo{}})

	_, err := s.Resolve(context.Background(), "")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{getErr: common.ErrorNotFound}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	_, err := s.Resolve(context.Background(), "bogus")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestResolve_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	tok := "tok-1"
	repo := &fakeUsersRepo{getOut: &models.User{Username: "test1", Token: &tok}}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	user, err := s.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if user.Username != "test1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeUsersRepo{}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	tok := "tok-1"
	user := &models.User{Username: "test1", Token: &tok}
	if err := s.Logout(context.Background(), user); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if repo.lastTokenUser != "test1" || repo.lastToken != nil {
		t.Fatalf("expected token cleared for test1, got user=%q token=%v", repo.lastTokenUser, repo.lastToken)
	}
	if user.Token != nil {
		t.Fatal("user token must be nil after logout")
	}
}

func TestLogout_UnknownUser(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &fakeUsersRepo{tokenErr: common.ErrorNotFound}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	err := s.Logout(context.Background(), &models.User{Username: "ghost"})
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestUpdateProfile_NameOnly(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	hash := mustHash(t, "test1")
	repo := &fakeUsersRepo{}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	user := &models.User{Username: "test1", Name: "test1", PasswordHash: hash}
	got, err := s.UpdateProfile(context.Background(), user, strptr("test1 updated"), nil)
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Name != "test1 updated" {
		t.Fatalf("name not updated: %+v", got)
	}
	if got.PasswordHash != hash {
		t.Fatal("password hash must not change when password is absent")
	}
}

func TestUpdateProfile_PasswordRehashed(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	oldHash := mustHash(t, "test1")
	repo := &fakeUsersRepo{}
	s := NewUserService(db, &fakeRepoManager{u: repo})

	user := &models.User{Username: "test1", Name: "test1", PasswordHash: oldHash}
	got, err := s.UpdateProfile(context.Background(), user, nil, strptr("updated"))
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.PasswordHash == oldHash {
		t.Fatal("password hash must change")
	}
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("updated")) != nil {
		t.Fatal("new hash does not verify against the new password")
	}
	if repo.lastProfile == nil || repo.lastProfile.Username != "test1" {
		t.Fatalf("profile not persisted: %+v", repo.lastProfile)
	}
}
