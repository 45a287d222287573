// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/formulary/internal/platform/apperr"
)

/*
TestAppError_Status checks that each constructor maps to its HTTP status.
*/
func TestAppError_Status(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Formula"), apperr.CodeNotFound, http.StatusNotFound},
		{"unauthenticated", apperr.Unauthenticated("Not authenticated"), apperr.CodeUnauthenticated, http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("Admins only"), apperr.CodeForbidden, http.StatusForbidden},
		{"validation", apperr.ValidationError("Validation failed"), apperr.CodeValidation, http.StatusBadRequest},
		{"persistence", apperr.Persistence("Could not create formula", cause), apperr.CodePersistence, http.StatusBadGateway},
		{"upload", apperr.Upload("Image upload failed", cause), apperr.CodeUpload, http.StatusBadGateway},
		{"internal", apperr.Internal(cause), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAppError_CauseChain verifies that wrapped causes stay reachable for logging.
*/
func TestAppError_CauseChain(t *testing.T) {
	cause := errors.New("bucket unreachable")
	err := fmt.Errorf("workflow: %w", apperr.Upload("Image upload failed", cause))

	require.True(t, apperr.IsAppError(err))
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperr.HasCode(err, apperr.CodeUpload))
	assert.False(t, apperr.HasCode(err, apperr.CodePersistence))
	assert.Equal(t, "Image upload failed", apperr.As(err).Error())

	assert.Nil(t, apperr.As(cause))
	assert.False(t, apperr.HasCode(nil, apperr.CodeUpload))
}
