// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the *model.SessionUser of a signed-in request.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID is the session key holding the signed-in user ID.
const SessionKeyUserID = "user_id"

// LoadUser creates middleware that loads the signed-in user into the
// request context. A session pointing at a deleted user is destroyed and
// the request continues anonymously.
func LoadUser(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUser(r.Context(), &model.SessionUser{
				ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.SessionUser {
	user, _ := r.Context().Value(ContextKeyUser).(*model.SessionUser)
	return user
}

func isAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// Gate redirects page requests by session state:
// /admin without a session goes to /login?redirect=<path>, /admin as a
// non-admin goes to /, and /login with a session goes to /admin or /.
// Use after LoadUser.
func Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		path := r.URL.Path

		switch {
		case isAdminPath(path) && user == nil:
			target := "/login?" + url.Values{"redirect": {path}}.Encode()
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		case isAdminPath(path) && !user.IsAdmin():
			logDenied(r, user)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		case path == "/login" && user != nil:
			if user.IsAdmin() {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
			} else {
				http.Redirect(w, r, "/", http.StatusSeeOther)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdminAPI answers 401 without a session and 403 for non-admins
// with a JSON error body. Use after LoadUser.
func RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.", nil)
			return
		}
		if !user.IsAdmin() {
			logDenied(r, user)
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin access required.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logDenied(r *http.Request, user *model.SessionUser) {
	slog.Warn("access denied",
		"status", http.StatusForbidden,
		"method", r.Method,
		"path", r.URL.Path,
		"user_id", user.ID,
		"user_role", user.Role,
		"remote_addr", r.RemoteAddr,
		"category", model.EventCategoryAuth,
	)
}
