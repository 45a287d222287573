// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for admin accounts.
type AccountRepository interface {

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr NOT_FOUND when absent, PERSISTENCE_ERROR otherwise
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		Create persists a new account. An existing email is left untouched
		and reported as created=false.
	*/
	Create(context context.Context, account *Account) (created bool, err error)
}

// # Session Data Access

// SessionRepository defines the contract for the volatile session store.
type SessionRepository interface {

	// Save stores the session until ttl elapses.
	Save(context context.Context, session *Session, ttl time.Duration) error

	// Find returns the live session with the given id, or apperr NOT_FOUND.
	Find(context context.Context, id string) (*Session, error)

	// Delete revokes the session. Deleting an absent session is not an error.
	Delete(context context.Context, id string) error
}
