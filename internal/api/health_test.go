// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/formulary/internal/api"
)

func ok(context.Context) error { return nil }

/*
TestHealth_Readiness reports each dependency and degrades on any failure.
*/
func TestHealth_Readiness(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		storage api.Check
		status  int
		body    string
	}{
		{"all healthy", ok, http.StatusOK, `"status":"ready"`},
		{"bucket down", func(context.Context) error { return errors.New("no such bucket") }, http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
				CheckDatabase: ok,
				CheckCache:    ok,
				CheckStorage:  tt.storage,
			}, logger)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.body)
			assert.Contains(t, recorder.Body.String(), `"name":"storage"`)

			recorder = httptest.NewRecorder()
			liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}
