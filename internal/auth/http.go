// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/formulary/internal/platform/middleware"
	requestutil "github.com/taibuivan/formulary/internal/platform/request"
	"github.com/taibuivan/formulary/internal/platform/respond"
	"github.com/taibuivan/formulary/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the sign-in endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login   : Opens a session and returns a bearer token.
//   - POST /logout  : Revokes the caller's session.
//   - GET  /session : Describes the caller's session, if any.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Get("/session", handler.session)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Description: Verifies credentials and opens a revocable session.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Access token, lifetime in seconds, and session
  - 400: VALIDATION_ERROR
  - 401: UNAUTHENTICATED: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: result.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(result.ExpiresIn.Seconds()),
		FieldSession:     result.Session,
	})
}

/*
POST /api/v1/auth/logout.

Response:
  - 204: Session revoked
  - 401: UNAUTHENTICATED
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/auth/session.

Description: Anonymous callers and callers whose session expired or was
revoked get a null session rather than an error.

Response:
  - 200: { session, is_admin }
*/
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.authService.CurrentSession(request.Context())
	if err != nil {
		session = nil
	}

	respond.OK(writer, map[string]any{
		FieldSession: session,
		FieldIsAdmin: session.IsAdmin(),
	})
}
