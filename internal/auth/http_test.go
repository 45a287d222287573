// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/formulary/internal/auth"
	"github.com/taibuivan/formulary/internal/platform/middleware"
)

func newRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(f.tokens))
	router.Mount("/auth", auth.NewHandler(f.service).Routes())
	return router
}

type envelope struct {
	Data map[string]any `json:"data"`
	Code string         `json:"code"`
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func TestHandler_LoginSessionLogout(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder, body := doRequest(t, router, http.MethodPost, "/auth/login", "",
		`{"email":"admin@formulary.app","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	token, _ := body.Data["access_token"].(string)
	require.NotEmpty(t, token)

	recorder, body = doRequest(t, router, http.MethodGet, "/auth/session", token, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, body.Data["is_admin"])
	assert.NotNil(t, body.Data["session"])

	recorder, _ = doRequest(t, router, http.MethodPost, "/auth/logout", token, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, body = doRequest(t, router, http.MethodGet, "/auth/session", token, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, false, body.Data["is_admin"])
	assert.Nil(t, body.Data["session"])
}

func TestHandler_LoginValidation(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing password", `{"email":"admin@formulary.app"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad email", `{"email":"admin","password":"x"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong password", `{"email":"admin@formulary.app","password":"x"}`, http.StatusUnauthorized, "UNAUTHENTICATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := doRequest(t, router, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandler_LogoutRequiresAuth(t *testing.T) {
	f := newFixture(t)
	recorder, body := doRequest(t, newRouter(f), http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
}
