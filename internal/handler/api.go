// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the JSON HTTP handlers for the admin API and
// the public contact endpoint.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/corpsite-go/internal/apperr"
	"github.com/olegiv/corpsite-go/internal/store"
)

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteValidationError writes a 400 response with per-field errors.
// Validation is handled at this boundary; it never reaches the store.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// WriteAppError translates a taxonomy error into an HTTP response.
// Auth failures are deliberately indistinct to the caller.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Resource not found", nil)
	case errors.Is(err, apperr.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", nil)
	case errors.Is(err, apperr.ErrMissingCredential),
		errors.Is(err, apperr.ErrInvalidCredential),
		errors.Is(err, apperr.ErrExpired),
		errors.Is(err, apperr.ErrMalformed):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
	case errors.Is(err, apperr.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		WriteError(w, http.StatusInternalServerError, "store_unavailable", "Storage is temporarily unavailable", nil)
	default:
		slog.Error("unexpected handler error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}

// ParseIDParam parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Pagination defaults and cap for list endpoints.
const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// parseFilter builds a store.Filter from list query parameters.
// Absent parameters impose no constraint; present ones combine conjunctively.
func parseFilter(r *http.Request, withAuthor bool) store.Filter {
	q := r.URL.Query()

	f := store.Filter{
		Category: q.Get("category"),
		Language: q.Get("language"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
	}
	if withAuthor {
		f.Author = q.Get("author")
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	f.Limit = perPage
	f.Offset = (page - 1) * perPage
	return f
}

// pageMeta builds pagination metadata from a filter and total count.
func pageMeta(f store.Filter, total int64) *Meta {
	page := 1
	if f.Limit > 0 {
		page = f.Offset/f.Limit + 1
	}
	return &Meta{Total: total, Page: page, PerPage: f.Limit}
}

// decodeBody decodes a JSON request body into dst, rejecting unknown junk
// bodies with a validation error the caller can surface.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid JSON body", err)
	}
	return nil
}
