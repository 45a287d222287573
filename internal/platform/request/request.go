// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns (JSON and multipart with an attached file), ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/ctxutil"
	"github.com/taibuivan/formulary/internal/platform/sec"
	"github.com/taibuivan/formulary/internal/platform/validate"
)

// multipartMemory is the part of a multipart body kept in memory before spilling to disk.
const multipartMemory = 8 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// File is an uploaded file read fully into memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

/*
DecodeWithFile decodes a JSON document and an optional file from the request.

Two encodings are accepted:
  - multipart/form-data: the JSON document is the form value named jsonField,
    the file is the part named fileField (optional).
  - anything else: the whole body is the JSON document and no file is returned.

The body is capped at maxBytes. A nil *File means no file was sent.
*/
func DecodeWithFile(writer http.ResponseWriter, request *http.Request, maxBytes int64, jsonField, fileField string, target interface{}) (*File, error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)
		return nil, DecodeJSON(request, target)
	}

	// Leave headroom for the JSON part and multipart framing.
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes+multipartMemory)
	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, validate.RequiredError(fileField, fmt.Sprintf("File exceeds %d bytes", maxBytes))
		}
		return nil, apperr.ValidationError("Invalid multipart payload")
	}

	document := request.FormValue(jsonField)
	if document == "" {
		return nil, validate.RequiredError(jsonField, "This field is required")
	}
	if err := json.Unmarshal([]byte(document), target); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	part, header, err := request.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.ValidationError("Invalid file part")
	}
	defer part.Close()

	if header.Size > maxBytes {
		return nil, validate.RequiredError(fileField, fmt.Sprintf("File exceeds %d bytes", maxBytes))
	}

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, apperr.ValidationError("Could not read file part")
	}

	return &File{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64ID parses a named URL parameter as a positive int64 identifier.

Returns:
  - error: VALIDATION_ERROR if the parameter is not a positive integer
*/
func Int64ID(request *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - error: apperr.Unauthenticated if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	return claims, nil
}
