// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/formulary/internal/platform/database/schema"
	"github.com/taibuivan/formulary/internal/platform/dberr"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByEmail retrieves an account by its unique email address.

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or persistence errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	table := schema.AdminAccount
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		table.ID, table.Email, table.PasswordHash, table.Role, table.CreatedAt,
		table.Table, table.Email)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}

	return account, nil
}

/*
Create inserts the account unless the email is already registered.

Returns:
  - bool: true when a row was inserted
  - error: Persistence failures
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) (bool, error) {
	table := schema.AdminAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO NOTHING`,
		table.Table, table.ID, table.Email, table.PasswordHash, table.Role,
		table.Email)

	tag, err := repository.pool.Exec(context, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Role,
	)
	if err != nil {
		return false, dberr.Wrap(err, "create_account")
	}

	return tag.RowsAffected() == 1, nil
}
