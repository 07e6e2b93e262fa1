// Package addresses provides the PostgreSQL-backed repository for contact
// addresses.
package addresses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// PostgresRepository implements address storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an address linked to address.ContactID.
func (r *PostgresRepository) Create(ctx context.Context, address *models.Address) (*models.Address, error) {
	query :=
		`INSERT INTO addresses (street, city, province, country, postal_code, contact_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		address.Street, address.City, address.Province, address.Country,
		address.PostalCode, address.ContactID).Scan(&address.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}

// GetByID returns the address with the given id under the given contact, or
// common.ErrorNotFound. An address hanging off a different contact is
// reported exactly like a missing one.
func (r *PostgresRepository) GetByID(ctx context.Context, contactID, addressID int64) (*models.Address, error) {
	query :=
		`SELECT id, street, city, province, country, postal_code, contact_id FROM addresses
		 WHERE id = $1 AND contact_id = $2
		 `

	address := &models.Address{}
	err := r.db.QueryRowContext(ctx, query, addressID, contactID).Scan(
		&address.ID, &address.Street, &address.City, &address.Province,
		&address.Country, &address.PostalCode, &address.ContactID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return address, nil
}

// Update overwrites all mutable fields. The statement is scoped to the
// parent contact; the address can never move to another contact.
func (r *PostgresRepository) Update(ctx context.Context, address *models.Address) error {
	query :=
		`UPDATE addresses SET street = $3, city = $4, province = $5, country = $6, postal_code = $7
		 WHERE id = $1 AND contact_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		address.ID, address.ContactID,
		address.Street, address.City, address.Province, address.Country, address.PostalCode)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// Delete removes the address under the given contact.
func (r *PostgresRepository) Delete(ctx context.Context, contactID, addressID int64) error {
	query :=
		`DELETE FROM addresses
		 WHERE id = $1 AND contact_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, addressID, contactID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return checkAffected(res)
}

// ListByContact returns every address under the given contact, ordered by id.
func (r *PostgresRepository) ListByContact(ctx context.Context, contactID int64) ([]*models.Address, error) {
	query :=
		`SELECT id, street, city, province, country, postal_code, contact_id FROM addresses
		 WHERE contact_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Address
	for rows.Next() {
		var item models.Address
		if err := rows.Scan(
			&item.ID, &item.Street, &item.City, &item.Province,
			&item.Country, &item.PostalCode, &item.ContactID,
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
