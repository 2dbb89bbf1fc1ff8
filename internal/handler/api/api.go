// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers for the public magazine surface
// and the admin content API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/anandda/magazine/internal/service"
)

// maxJSONBody caps admin request bodies.
const maxJSONBody = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	public    *service.PublicService
	admin     *service.AdminService
	flipbooks *service.FlipbookService
}

// NewHandler creates a new API handler.
func NewHandler(public *service.PublicService, admin *service.AdminService, flipbooks *service.FlipbookService) *Handler {
	return &Handler{
		public:    public,
		admin:     admin,
		flipbooks: flipbooks,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
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
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	message := "Validation failed"
	if len(fieldErrors) == 1 {
		for _, m := range fieldErrors {
			message = m
		}
	}
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", message, fieldErrors)
}

// WriteServiceError maps service errors to status codes. Unknown errors are
// logged and reported as 500 without their text.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, what+" not found.")
	case errors.Is(err, service.ErrInvalidInput):
		WriteValidationError(w, service.ValidationMessages(err))
	case errors.Is(err, service.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", "Slug is already in use.", nil)
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		WriteInternalError(w, "Internal Server Error")
	}
}

// decodeJSON reads a JSON body into dst. It writes the 400 response itself
// and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// queryInt parses a query parameter, returning 0 when absent or invalid.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0
	}
	return v
}

// pageMeta converts a service page into response metadata.
func pageMeta[T any](p service.Page[T]) *Meta {
	return &Meta{Total: int64(p.Total), Page: p.Page, PerPage: p.PerPage, Pages: p.Pages}
}
