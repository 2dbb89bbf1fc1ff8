// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the public read models, the admin write paths
// and the flipbook viewers that sit between HTTP handlers and the store.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound is returned when a row does not exist or is not visible.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput wraps validation.Errors for rejected admin input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a unique slug or email is already taken.
	ErrConflict = errors.New("conflict")
)

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("loading %s: %w", what, err)
}

// invalid wraps field errors so callers can match ErrInvalidInput and still
// extract the per-field messages with errors.As.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, verrs)
	}
	return err
}

// fieldError builds a single-field validation failure.
func fieldError(field, message string) error {
	return invalid(validation.Errors{field: errors.New(message)})
}

// writeError classifies database constraint failures.
func writeError(err error, what string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%s slug is already in use: %w", what, ErrConflict)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fieldError("authorId", "Invalid relation ID (categoryId/tag/authorId).")
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("saving %s: %w", what, err)
}

// ValidationMessages flattens field errors into field → message.
func ValidationMessages(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	return out
}
