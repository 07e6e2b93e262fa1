// Package users provides the PostgreSQL-backed repository for user accounts
// and their session tokens.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row. The caller is responsible for hashing the
// password and for checking username uniqueness inside the same transaction.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Name, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByUsername returns the user with the given username or common.ErrorNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, name, password_hash, token, created_at FROM users
		 WHERE username = $1
		 `

	return r.getOne(ctx, query, username)
}

// GetByToken returns the user whose current session token equals the supplied
// value, or common.ErrorNotFound when the token matches no user.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	query :=
		`SELECT username, name, password_hash, token, created_at FROM users
		 WHERE token = $1
		 `

	return r.getOne(ctx, query, token)
}

// CountByUsername reports how many users exist with the given username
// (0 or 1, the column is the primary key).
func (r *PostgresRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	query :=
		`SELECT count(*) FROM users
		 WHERE username = $1
		 `

	var count int64
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

// UpdateToken sets or clears (nil) the user's session token.
func (r *PostgresRepository) UpdateToken(ctx context.Context, username string, token *string) error {
	query :=
		`UPDATE users SET token = $2
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, username, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return r.checkAffected(res)
}

// UpdateProfile overwrites the user's display name and password hash.
// The username itself is immutable.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET name = $2, password_hash = $3
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, user.Username, user.Name, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return r.checkAffected(res)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.Username, &user.Name, &user.PasswordHash, &user.Token, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
