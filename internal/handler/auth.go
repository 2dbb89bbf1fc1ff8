// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/anandda/magazine/internal/auth"
	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/render"
	"github.com/anandda/magazine/internal/service"
	"github.com/anandda/magazine/internal/store"
)

// Login flash messages.
const (
	msgCredentialsRequired = "Email and password are required."
	msgInvalidCredentials  = "Invalid email or password."
	msgLoggedOut           = "You have been signed out."
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	audit           *service.AuditService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		audit:           service.NewAuditService(db),
		loginProtection: lp,
	}
}

// safeRedirect returns target when it is a local path, else "".
func safeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	return target
}

// loginURL is the login page, carrying the post-login redirect when set.
func loginURL(redirect string) string {
	if redirect == "" {
		return RouteLogin
	}
	return RouteLogin + "?" + url.Values{"redirect": {redirect}}.Encode()
}

// LoginForm renders the login page. Signed in users never reach it; the
// gate redirects them first.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	data := render.TemplateData{
		Title: "Sign in",
		Data:  safeRedirect(r.URL.Query().Get("redirect")),
	}
	if err := h.renderer.Render(w, r, http.StatusOK, "auth/login", data); err != nil {
		slog.Error("rendering login page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// fail flashes message and sends the browser back to the login form.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, redirect, message string) {
	h.renderer.SetFlash(r, message, "error")
	http.Redirect(w, r, loginURL(redirect), http.StatusSeeOther)
}

// recordFailure counts a failed attempt and returns the message to show.
func (h *AuthHandler) recordFailure(email string) string {
	if h.loginProtection == nil {
		return msgInvalidCredentials
	}
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		return fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(lockDuration))
	}
	if remaining := h.loginProtection.GetRemainingAttempts(email); remaining > 0 && remaining <= 3 {
		return fmt.Sprintf("%s %d attempts remaining.", msgInvalidCredentials, remaining)
	}
	return msgInvalidCredentials
}

// auditAuth records an auth event. Failures are logged, never returned.
func (h *AuthHandler) auditAuth(r *http.Request, level, message string, metadata map[string]any) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["ip"] = middleware.GetClientIP(r)
	if err := h.audit.Record(r.Context(), level, model.EventCategoryAuth, message, metadata); err != nil {
		slog.Error("recording auth event", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, "", msgCredentialsRequired)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	redirect := safeRedirect(r.FormValue("redirect"))

	if email == "" || password == "" {
		h.fail(w, r, redirect, msgCredentialsRequired)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.auditAuth(r, model.EventLevelWarning, "Login attempt on locked account", map[string]any{"email": email})
			h.fail(w, r, redirect, fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error during login", "error", err)
		}
		auth.CheckDummy(password)
		h.auditAuth(r, model.EventLevelWarning, "Login failed: user not found", map[string]any{"email": email})
		h.fail(w, r, redirect, h.recordFailure(email))
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
	}
	if !valid {
		h.auditAuth(r, model.EventLevelWarning, "Login failed: invalid password", map[string]any{"email": email, "user_id": user.ID})
		h.fail(w, r, redirect, h.recordFailure(email))
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now().UTC(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "category", model.EventCategoryAuth)
	h.auditAuth(r, model.EventLevelInfo, "User logged in", map[string]any{"email": user.Email, "user_id": user.ID})

	target := RouteRoot
	if user.Role == model.RoleAdmin {
		target = RouteAdmin
		if redirect != "" {
			target = redirect
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.auditAuth(r, model.EventLevelInfo, "User logged out", map[string]any{"user_id": user.ID})
		slog.Info("user logged out", "user_id", user.ID, "category", model.EventCategoryAuth)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	h.renderer.SetFlash(r, msgLoggedOut, "info")
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
