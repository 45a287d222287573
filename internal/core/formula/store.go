// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"context"

	"github.com/taibuivan/formulary/internal/auth"
)

// Repository is the record store holding one row per formula.
type Repository interface {
	// List returns every row, newest first.
	List(context context.Context) ([]Row, error)

	// Get returns the row with the given id, or apperr NOT_FOUND.
	Get(context context.Context, id int64) (Row, error)

	// Insert stores a new row and returns it with id and created_at assigned.
	Insert(context context.Context, row Row) (Row, error)

	// Update overwrites the given columns and returns the full updated row.
	Update(context context.Context, id int64, row Row) (Row, error)

	// Delete removes the row, or reports apperr NOT_FOUND.
	Delete(context context.Context, id int64) error

	// ImageURL returns the stored image reference ("" when none), or apperr NOT_FOUND.
	ImageURL(context context.Context, id int64) (string, error)
}

// ObjectStore holds formula images.
type ObjectStore interface {
	Upload(context context.Context, path string, data []byte, contentType string) error
	Delete(context context.Context, paths ...string) error
	PublicURL(path string) string
	PathFromURL(url string) (string, bool)
}

// SessionGate resolves the caller's live session.
type SessionGate interface {
	CurrentSession(context context.Context) (*auth.Session, error)
}
