// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
)

// SessionResponse is the body of GET /api/auth/get-session for a signed in
// user. Anonymous callers get a JSON null.
type SessionResponse struct {
	User *model.SessionUser `json:"user"`
}

// GetSession handles GET /api/auth/get-session.
func GetSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	user := middleware.GetUser(r)
	if user == nil {
		WriteJSON(w, http.StatusOK, nil)
		return
	}
	WriteJSON(w, http.StatusOK, SessionResponse{User: user})
}
