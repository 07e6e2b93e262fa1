// Package services contains server-side business logic. This file implements
// UserService: registration, login/logout, profile updates, and resolving a
// session token back to its user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// newToken is a seam for testing token generation. Tokens are opaque and
// matched by exact equality; uuid v4 gives enough entropy that collisions
// are negligible, and the unique index on users.token turns one into a
// login error rather than a shared session.
var newToken = uuid.NewString

// UserService provides account and session operations:
// - Register: create users, rejecting duplicate usernames
// - Login/Logout: verify credentials and set/clear the session token
// - Resolve: map a bearer token to its user
// - UpdateProfile: partial name/password updates
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given pool and repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// Register creates a new user with a bcrypt-hashed password. The duplicate
// check and the insert share one transaction so concurrent registrations of
// the same username cannot both succeed.
func (s *UserService) Register(ctx context.Context, username, password, name string) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		n, err := repo.CountByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("error checking username: %w", err)
		}
		if n > 0 {
			return common.ErrorAlreadyExists
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return common.ErrorInternal
		}

		user, err = repo.Create(ctx, &models.User{
			Username:     username,
			Name:         name,
			PasswordHash: string(hash),
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password against the stored hash and, on success,
// generates a fresh opaque token and persists it on the user. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token := newToken()
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdateToken(ctx, user.Username, &token)
	}); err != nil {
		return nil, "", common.ErrorInternal
	}

	user.Token = &token
	return user, token, nil
}

// Resolve maps a bearer token back to its user. A missing, empty, or
// unknown token fails with ErrorUnauthorized; nothing reaches the scoped
// repositories without passing through here first.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Logout clears the user's stored session token; the old token stops
// resolving immediately.
func (s *UserService) Logout(ctx context.Context, user *models.User) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdateToken(ctx, user.Username, nil)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	user.Token = nil
	return nil
}

// UpdateProfile applies only the supplied fields: a new display name, a new
// password (rehashed before storage), or both. The username is immutable.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, name, password *string) (*models.User, error) {
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		user.PasswordHash = string(hash)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Users(tx).UpdateProfile(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}
