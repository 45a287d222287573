// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors to the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "get_formula"))

	notFound := dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "get_formula")
	assert.True(t, apperr.HasCode(notFound, apperr.CodeNotFound))

	cause := errors.New("connection refused")
	persistence := dberr.Wrap(cause, "insert_formula")
	assert.True(t, apperr.HasCode(persistence, apperr.CodePersistence))
	assert.ErrorIs(t, persistence, cause)

	forbidden := apperr.Forbidden("nope")
	assert.Same(t, forbidden, dberr.Wrap(forbidden, "delete_formula"))
}
