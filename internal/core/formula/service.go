// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/ctxutil"
	"github.com/taibuivan/formulary/internal/platform/database/schema"
	"github.com/taibuivan/formulary/internal/platform/validate"
)

// allowedImages maps accepted image types to the blob file extension.
var allowedImages = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

/*
Service is the mutation workflow over the record store and the object store.

The two stores are changed by separate calls with no shared transaction. Blob
uploads and deletions always happen before the row change that references
them, except on Add where the row must exist first so the blob path can carry
its id. Deletions of old blobs are best-effort: failures are logged and never
fail the operation.
*/
type Service struct {
	repo    Repository
	objects ObjectStore
	gate    SessionGate
	logger  *slog.Logger
}

func NewService(repo Repository, objects ObjectStore, gate SessionGate, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		objects: objects,
		gate:    gate,
		logger:  logger,
	}
}

// # Reads

// List returns every entry, newest first.
func (service *Service) List(context context.Context) ([]Formula, error) {
	rows, err := service.repo.List(context)
	if err != nil {
		return nil, persistence(err, "Could not load formulas")
	}

	entries := make([]Formula, 0, len(rows))
	for _, row := range rows {
		entry, err := ToEntity(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// # Mutations

/*
Add creates an entry and, when upload is set, attaches its image.

Flow:
 1. Insert the row without an image column.
 2. Upload the blob under "<id>-<unix millis>.<ext>".
 3. Point the row at the blob's public URL.

If step 2 fails the row stays without an image and UPLOAD_ERROR is returned.
If step 3 fails the blob is removed (best-effort) and PERSISTENCE_ERROR is
returned; the row still exists without an image. In both cases the saved,
image-less entry is returned alongside the error.
*/
func (service *Service) Add(context context.Context, entry Formula, upload *Upload) (*Formula, error) {
	if err := service.authorize(context); err != nil {
		return nil, err
	}

	if err := validateFormula(entry); err != nil {
		return nil, err
	}

	image, err := prepareImage(upload)
	if err != nil {
		return nil, err
	}

	// ── 1. Insert ──
	patch := PatchOf(entry)
	patch.VisualExplanation = nil

	inserted, err := service.repo.Insert(context, ToRow(patch))
	if err != nil {
		return nil, persistence(err, "Could not create formula")
	}

	created, err := ToEntity(inserted)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.LoggerOr(context, service.logger)
	if image == nil {
		logger.Info("formula_created", slog.Int64("id", created.ID))
		return created, nil
	}

	// ── 2. Upload ──
	path := blobPath(created.ID, image.ext)
	if err := service.objects.Upload(context, path, image.data, image.contentType); err != nil {
		logger.Warn("formula_created_without_image", slog.Int64("id", created.ID), slog.Any("error", err))
		return created, apperr.Upload("Image upload failed; the formula was saved without an image", err)
	}

	// ── 3. Reference ──
	imageURL := service.objects.PublicURL(path)
	updated, err := service.repo.Update(context, created.ID, ToRow(Patch{
		VisualExplanation: &VisualExplanation{ImageURL: imageURL},
	}))
	if err != nil {
		service.deletePaths(context, path)
		logger.Warn("formula_created_without_image", slog.Int64("id", created.ID), slog.Any("error", err))
		return created, persistence(err, "Could not attach image to formula")
	}

	logger.Info("formula_created", slog.Int64("id", created.ID), slog.String("image_path", path))
	return ToEntity(updated)
}

/*
Update applies a partial change to an entry.

Image handling depends on the request:
  - upload set: the old blob is removed (best-effort), the new one uploaded,
    and image_url points at it.
  - no upload, visual_explanation present with an empty URL: the old blob is
    removed (best-effort) and image_url becomes NULL.
  - otherwise image_url is untouched.

A present non-empty image URL without an upload must equal the stored one;
an entry can only point at blobs this workflow uploaded.

When the new upload fails after the old blob was removed, image_url is reset
to NULL (best-effort) and the detached entity is returned with UPLOAD_ERROR.
*/
func (service *Service) Update(context context.Context, id int64, patch Patch, upload *Upload) (*Formula, error) {
	if err := service.authorize(context); err != nil {
		return nil, err
	}

	oldURL, err := service.repo.ImageURL(context, id)
	if err != nil {
		return nil, persistence(err, "Could not read formula")
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	image, err := prepareImage(upload)
	if err != nil {
		return nil, err
	}

	clearImage := false
	switch {
	case image != nil:
		patch.VisualExplanation = nil
	case patch.VisualExplanation == nil:
	case patch.VisualExplanation.ImageURL == "":
		clearImage = true
	case patch.VisualExplanation.ImageURL == oldURL:
		patch.VisualExplanation = nil
	default:
		return nil, validate.RequiredError(FieldVisualExplanation+".image_url",
			"Can only be cleared, or replaced by uploading an image")
	}

	row := ToRow(patch)
	logger := ctxutil.LoggerOr(context, service.logger)

	var uploadedPath string
	switch {
	case image != nil:
		if oldURL != "" {
			service.deleteURL(context, oldURL)
		}

		uploadedPath = blobPath(id, image.ext)
		if err := service.objects.Upload(context, uploadedPath, image.data, image.contentType); err != nil {
			return service.detachImage(context, id, oldURL), apperr.Upload("Image upload failed", err)
		}
		row[schema.Formula.ImageURL] = service.objects.PublicURL(uploadedPath)

	case clearImage && oldURL != "":
		service.deleteURL(context, oldURL)
	}

	if len(row) == 0 {
		current, err := service.repo.Get(context, id)
		if err != nil {
			return nil, persistence(err, "Could not read formula")
		}
		return ToEntity(current)
	}

	updated, err := service.repo.Update(context, id, row)
	if err != nil {
		if uploadedPath != "" {
			service.deletePaths(context, uploadedPath)
		}
		return nil, persistence(err, "Could not update formula")
	}

	logger.Info("formula_updated", slog.Int64("id", id), slog.Int("columns", len(row)))
	return ToEntity(updated)
}

/*
Delete removes an entry and its image.

An unknown id yields NOT_FOUND before the object store is touched.
*/
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.authorize(context); err != nil {
		return err
	}

	oldURL, err := service.repo.ImageURL(context, id)
	if err != nil {
		return persistence(err, "Could not read formula")
	}

	if oldURL != "" {
		service.deleteURL(context, oldURL)
	}

	if err := service.repo.Delete(context, id); err != nil {
		return persistence(err, "Could not delete formula")
	}

	ctxutil.LoggerOr(context, service.logger).Info("formula_deleted", slog.Int64("id", id))
	return nil
}

// # Helpers

// authorize requires a live admin session before any store is touched.
func (service *Service) authorize(context context.Context) error {
	session, err := service.gate.CurrentSession(context)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeUnauthenticated) {
			return err
		}
		gateErr := apperr.Unauthenticated("Session could not be verified")
		gateErr.Cause = err
		return gateErr
	}
	if session == nil {
		return apperr.Unauthenticated("Authentication required")
	}
	if !session.IsAdmin() {
		return apperr.Forbidden("Only admins can change the catalog")
	}
	return nil
}

// deleteURL removes the blob behind a stored image URL (best-effort).
func (service *Service) deleteURL(context context.Context, imageURL string) {
	path, ok := service.objects.PathFromURL(imageURL)
	if !ok {
		ctxutil.LoggerOr(context, service.logger).Warn("image_path_unparsable", slog.String("url", imageURL))
		return
	}
	service.deletePaths(context, path)
}

// detachImage nulls image_url after its blob was removed (best-effort).
// It returns the stored entity, or nil when nothing was changed.
func (service *Service) detachImage(context context.Context, id int64, oldURL string) *Formula {
	if oldURL == "" {
		return nil
	}

	logger := ctxutil.LoggerOr(context, service.logger)

	row, err := service.repo.Update(context, id, Row{schema.Formula.ImageURL: nil})
	if err != nil {
		logger.Warn("image_detach_failed", slog.Int64("id", id), slog.Any("error", err))
		return nil
	}

	detached, err := ToEntity(row)
	if err != nil {
		logger.Warn("image_detach_failed", slog.Int64("id", id), slog.Any("error", err))
		return nil
	}

	logger.Info("formula_image_detached", slog.Int64("id", id))
	return detached
}

// deletePaths removes blobs (best-effort).
func (service *Service) deletePaths(context context.Context, paths ...string) {
	if err := service.objects.Delete(context, paths...); err != nil {
		ctxutil.LoggerOr(context, service.logger).Warn("image_delete_failed",
			slog.Any("paths", paths),
			slog.Any("error", err),
		)
	}
}

type preparedImage struct {
	data        []byte
	contentType string
	ext         string
}

// prepareImage sniffs the upload's type. A nil upload yields a nil image.
func prepareImage(upload *Upload) (*preparedImage, error) {
	if upload == nil {
		return nil, nil
	}
	if len(upload.Data) == 0 {
		return nil, validate.RequiredError(FieldImage, "File is empty")
	}

	contentType := mimetype.Detect(upload.Data).String()
	ext, ok := allowedImages[contentType]
	if !ok {
		return nil, validate.RequiredError(FieldImage, fmt.Sprintf("Unsupported image type %s", contentType))
	}

	return &preparedImage{data: upload.Data, contentType: contentType, ext: ext}, nil
}

// blobPath derives a collision-free object path from the entry id and the clock.
func blobPath(id int64, ext string) string {
	return fmt.Sprintf("%d-%d.%s", id, time.Now().UnixMilli(), ext)
}

// persistence wraps a record-store failure. NOT_FOUND and validation
// errors pass through unchanged.
func persistence(err error, message string) error {
	if appError := apperr.As(err); appError != nil {
		switch appError.Code {
		case apperr.CodeNotFound, apperr.CodeValidation:
			return err
		}
	}
	return apperr.Persistence(message, err)
}
