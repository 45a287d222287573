// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth is the authentication gate in front of the catalog mutations.

Admin accounts live in PostgreSQL; signed-in sessions live in Redis with a TTL
so they expire on their own and can be revoked on sign-out. The access token
handed to the client is an RS256 JWT that only carries the session id, so a
token whose session was revoked is rejected even before it expires.
*/
package auth

import (
	"time"

	"github.com/taibuivan/formulary/internal/platform/sec"
)

// # Domain Entities

// Account is an operator allowed to sign in.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Session is a live sign-in, keyed by an opaque id.
type Session struct {
	ID        string       `json:"id"`
	AccountID string       `json:"account_id"`
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	UserAgent string       `json:"user_agent,omitempty"`
	IPAddress string       `json:"ip_address,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// IsAdmin reports whether the session may mutate the catalog.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == sec.RoleAdmin
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldSession     = "session"
	FieldIsAdmin     = "is_admin"
)
