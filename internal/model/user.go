// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types served over the JSON API:
// users, content statuses and the public shapes of every content type.
package model

import "time"

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an account that can sign in.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SessionUser is the subset of a user carried in the session and returned
// by the get-session endpoint.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin returns true if the session belongs to an admin.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
