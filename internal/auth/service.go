// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/constants"
	"github.com/taibuivan/formulary/internal/platform/ctxutil"
	"github.com/taibuivan/formulary/internal/platform/sec"
	"github.com/taibuivan/formulary/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens for a session.
type TokenProvider interface {
	GenerateAccessToken(subject sec.TokenSubject, timeToLive time.Duration) (string, error)
}

// Service implements sign-in, sign-out and session resolution.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger

	checkPassword func(password, hash string) bool
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
		checkPassword:     sec.CheckPasswordHash,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is a freshly opened session and its bearer token.
type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	Session     *Session
}

/*
Login validates credentials and opens a session.

Description: The same client-safe message is returned for an unknown email and
a wrong password to prevent account enumeration, and both paths run one bcrypt
comparison.

Returns:
  - *LoginResult: Token and session
  - error: UNAUTHENTICATED or store failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	account, err := service.accountRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			// Same bcrypt cost as a real mismatch.
			service.checkPassword(input.Password, sec.DummyPasswordHash())
			return nil, apperr.Unauthenticated("Invalid login credentials")
		}
		return nil, err
	}

	if !service.checkPassword(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid login credentials")
	}

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New(),
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(constants.AccessTokenTTL),
	}

	if err := service.sessionRepository.Save(context, session, constants.AccessTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(sec.TokenSubject{
		UserID:    account.ID,
		SessionID: session.ID,
		Email:     account.Email,
		Role:      string(account.Role),
	}, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("admin_signed_in",
		slog.String("account_id", account.ID),
		slog.String("session_id", session.ID),
	)

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   constants.AccessTokenTTL,
		Session:     session,
	}, nil
}

/*
Logout revokes the session of the authenticated caller.

Description: Revoking an already expired session is a success (idempotent).
*/
func (service *Service) Logout(context context.Context) error {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return apperr.Unauthenticated("Authentication required")
	}

	if err := service.sessionRepository.Delete(context, claims.SessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	ctxutil.GetLogger(context).Info("admin_signed_out", slog.String("session_id", claims.SessionID))
	return nil
}

/*
CurrentSession resolves the live session behind the caller's token.

Description: A verified token is not enough: the session it names must still
exist in the session store and belong to the same account.

Returns:
  - *Session: The live session
  - error: UNAUTHENTICATED when there is no usable session
*/
func (service *Service) CurrentSession(context context.Context) (*Session, error) {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil || claims.SessionID == "" {
		return nil, apperr.Unauthenticated("Authentication required")
	}

	session, err := service.sessionRepository.Find(context, claims.SessionID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthenticated("Session expired or revoked")
		}
		gateErr := apperr.Unauthenticated("Session could not be verified")
		gateErr.Cause = err
		return nil, gateErr
	}

	if session.AccountID != claims.UserID {
		return nil, apperr.Unauthenticated("Session does not match token")
	}

	return session, nil
}

// # Bootstrap

/*
EnsureAdmin creates the bootstrap admin account when it does not exist yet.

Description: Does nothing when email or password is empty. An existing account
keeps its current password.
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		service.logger.Info("admin_bootstrap_skipped")
		return nil
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	created, err := service.accountRepository.Create(context, &Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("auth_service_admin_bootstrap_failed: %w", err)
	}

	service.logger.Info("admin_bootstrap", slog.String("email", email), slog.Bool("created", created))
	return nil
}
