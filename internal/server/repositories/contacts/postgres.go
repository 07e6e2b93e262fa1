// Package contacts provides the PostgreSQL-backed repository for contacts,
// including owner-scoped CRUD and filtered search queries.
package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// PostgresRepository implements contact storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a contact owned by contact.Username.
func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contacts (first_name, last_name, email, phone, username)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Username).
		Scan(&contact.ID, &contact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

// GetByID returns the contact with the given id under the given owner, or
// common.ErrorNotFound. A contact owned by someone else is reported exactly
// like a missing one.
func (r *PostgresRepository) GetByID(ctx context.Context, username string, id int64) (*models.Contact, error) {
	query :=
		`SELECT id, first_name, last_name, email, phone, username, created_at FROM contacts
		 WHERE id = $1 AND username = $2
		 `

	contact := &models.Contact{}
	err := r.db.QueryRowContext(ctx, query, id, username).Scan(
		&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
		&contact.Phone, &contact.Username, &contact.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

// Update overwrites all mutable fields of the contact. The statement is
// scoped to the owner, so updating someone else's contact affects no rows
// and yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) error {
	query :=
		`UPDATE contacts SET first_name = $3, last_name = $4, email = $5, phone = $6
		 WHERE id = $1 AND username = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		contact.ID, contact.Username,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// Delete removes the contact under the given owner. Address rows are removed
// by the schema's cascade constraint.
func (r *PostgresRepository) Delete(ctx context.Context, username string, id int64) error {
	query :=
		`DELETE FROM contacts
		 WHERE id = $1 AND username = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// Search returns the page of contacts matching the filter under the given
// owner, ordered by id so repeated calls see a stable sequence.
func (r *PostgresRepository) Search(ctx context.Context, username string, filter SearchFilter, limit, offset int) ([]*models.Contact, error) {
	predicate, args := filter.buildPredicate(username)

	query := fmt.Sprintf(
		`SELECT id, first_name, last_name, email, phone, username, created_at FROM contacts
		 WHERE %s
		 ORDER BY id
		 LIMIT $%d OFFSET $%d
		 `, predicate, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		var item models.Contact
		if err := rows.Scan(
			&item.ID, &item.FirstName, &item.LastName, &item.Email,
			&item.Phone, &item.Username, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the total number of contacts matching the filter under the
// given owner, ignoring pagination.
func (r *PostgresRepository) Count(ctx context.Context, username string, filter SearchFilter) (int64, error) {
	predicate, args := filter.buildPredicate(username)

	query := fmt.Sprintf(
		`SELECT count(*) FROM contacts
		 WHERE %s
		 `, predicate)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
