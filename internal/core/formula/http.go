// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/middleware"
	requestutil "github.com/taibuivan/formulary/internal/platform/request"
	"github.com/taibuivan/formulary/internal/platform/respond"
	"github.com/taibuivan/formulary/internal/platform/sec"
	"github.com/taibuivan/formulary/internal/platform/validate"
)

// # Handler Implementation

// Handler serves the catalog. Reads come from the [Catalog]; writes go
// through the [Service] and are applied to the catalog once they succeed.
type Handler struct {
	service       *Service
	catalog       *Catalog
	maxImageBytes int64
}

// NewHandler constructs a formula [Handler].
func NewHandler(service *Service, catalog *Catalog, maxImageBytes int64) *Handler {
	return &Handler{service: service, catalog: catalog, maxImageBytes: maxImageBytes}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): list, search and read entries.
//   - Management (Restricted): [sec.RoleAdmin] for create, update and delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listFormulas)
	router.Get("/{id}", handler.getFormula)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createFormula)
		admin.Patch("/{id}", handler.updateFormula)
		admin.Delete("/{id}", handler.deleteFormula)
	})

	return router
}

/*
GET /api/v1/formulas.

Description: Lists the catalog, optionally filtered by a case-insensitive
search term in the given language.

Request:
  - q: string (search term, empty lists everything)
  - lang: string (en | my, default en)

Response:
  - 200: []Formula with meta.total and meta.loading
  - 400: VALIDATION_ERROR: Unsupported language
*/
func (handler *Handler) listFormulas(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	lang, err := ParseLanguage(queryParams.Get("lang"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("lang", "Must be one of: en, my"))
		return
	}

	entries := slices.Collect(handler.catalog.Filter(queryParams.Get("q"), lang))
	if entries == nil {
		entries = []Formula{}
	}

	respond.List(writer, entries, respond.ListMeta{
		Total:   len(entries),
		Loading: handler.catalog.Loading(),
	})
}

/*
GET /api/v1/formulas/{id}.

Response:
  - 200: Formula
  - 404: NOT_FOUND
*/
func (handler *Handler) getFormula(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, ok := handler.catalog.Get(id)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Formula"))
		return
	}

	respond.OK(writer, entry)
}

/*
POST /api/v1/formulas.

Description: Creates an entry. Send multipart/form-data with the entry as JSON
in the "formula" part and an optional "image" file, or a plain JSON body when
there is no image.

Response:
  - 201: Formula
  - 400: VALIDATION_ERROR
  - 401/403: UNAUTHENTICATED / FORBIDDEN
  - 502: PERSISTENCE_ERROR / UPLOAD_ERROR
*/
func (handler *Handler) createFormula(writer http.ResponseWriter, request *http.Request) {
	var entry Formula

	file, err := requestutil.DecodeWithFile(writer, request, handler.maxImageBytes, FieldFormula, FieldImage, &entry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Add(request.Context(), entry, toUpload(file))
	if created != nil {
		// Saved even when the image step failed.
		handler.catalog.ApplyAdd(*created)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
PATCH /api/v1/formulas/{id}.

Description: Partially updates an entry. Only keys present in the JSON
document are changed. "visual_explanation": {"image_url": ""} (or null)
removes the image; an "image" file replaces it. If that upload fails after
the old image was removed, the entry is left without an image.

Response:
  - 200: Formula
  - 400: VALIDATION_ERROR
  - 401/403: UNAUTHENTICATED / FORBIDDEN
  - 404: NOT_FOUND
  - 502: PERSISTENCE_ERROR / UPLOAD_ERROR
*/
func (handler *Handler) updateFormula(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	file, err := requestutil.DecodeWithFile(writer, request, handler.maxImageBytes, FieldFormula, FieldImage, &patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), id, patch, toUpload(file))
	if updated != nil {
		// Also set when a failed upload detached the old image.
		handler.catalog.ApplyUpdate(*updated)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/formulas/{id}.

Response:
  - 204: Deleted
  - 401/403: UNAUTHENTICATED / FORBIDDEN
  - 404: NOT_FOUND
  - 502: PERSISTENCE_ERROR
*/
func (handler *Handler) deleteFormula(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.catalog.ApplyDelete(id)
	respond.NoContent(writer)
}

func toUpload(file *requestutil.File) *Upload {
	if file == nil {
		return nil
	}
	return &Upload{Filename: file.Filename, Data: file.Data}
}
