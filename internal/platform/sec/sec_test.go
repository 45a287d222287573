// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/formulary/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip signs a token and reads the same subject back.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "formulary.app")

	token, err := service.GenerateAccessToken(sec.TokenSubject{
		UserID:    "account-1",
		SessionID: "session-1",
		Email:     "admin@formulary.app",
		Role:      string(sec.RoleAdmin),
	}, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "admin@formulary.app", claims.Email)
	assert.True(t, claims.IsAdmin())
}

/*
TestTokenService_Rejects covers expired, foreign and malformed tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "formulary.app")
	subject := sec.TokenSubject{UserID: "account-1", SessionID: "session-1", Role: string(sec.RoleAdmin)}

	expired, err := service.GenerateAccessToken(subject, -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	// Signed by a different key pair.
	foreign, err := newTokenService(t, "formulary.app").GenerateAccessToken(subject, time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)

	_, err = service.VerifyToken("not-a-jwt")
	assert.Error(t, err)
}

/*
TestTokenService_WrongIssuer rejects a token signed with the right key by another issuer.
*/
func TestTokenService_WrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	other := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere.app")
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "formulary.app")

	token, err := other.GenerateAccessToken(sec.TokenSubject{UserID: "account-1"}, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleViewer))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").IsValid())
}

/*
TestPasswordHash verifies bcrypt hashing and comparison.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
}

/*
TestDummyPasswordHash is stable, costs as much as a real hash and matches nothing obvious.
*/
func TestDummyPasswordHash(t *testing.T) {
	hash := sec.DummyPasswordHash()
	assert.Equal(t, hash, sec.DummyPasswordHash())

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	assert.False(t, sec.CheckPasswordHash("", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery", hash))
}
