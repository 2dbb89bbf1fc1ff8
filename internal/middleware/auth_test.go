// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anandda/magazine/internal/model"
)

var (
	adminUser  = &model.SessionUser{ID: "a1", Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
	readerUser = &model.SessionUser{ID: "u1", Name: "Reader", Email: "reader@example.com", Role: model.RoleUser}
)

func requestAs(method, target string, user *model.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), user))
	}
	return req
}

func TestGetUser(t *testing.T) {
	if user := GetUser(httptest.NewRequest(http.MethodGet, "/", nil)); user != nil {
		t.Errorf("GetUser() = %v, want nil", user)
	}
	if user := GetUser(requestAs(http.MethodGet, "/", adminUser)); user == nil || user.ID != "a1" {
		t.Errorf("GetUser() = %v, want admin", user)
	}
}

func TestGate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		user     *model.SessionUser
		wantCode int
		wantLoc  string
	}{
		{"admin anonymous", "/admin", nil, http.StatusSeeOther, "/login?redirect=%2Fadmin"},
		{"admin subpath anonymous", "/admin/articles", nil, http.StatusSeeOther, "/login?redirect=%2Fadmin%2Farticles"},
		{"admin as reader", "/admin", readerUser, http.StatusSeeOther, "/"},
		{"admin as admin", "/admin", adminUser, http.StatusOK, ""},
		{"login as admin", "/login", adminUser, http.StatusSeeOther, "/admin"},
		{"login as reader", "/login", readerUser, http.StatusSeeOther, "/"},
		{"login anonymous", "/login", nil, http.StatusOK, ""},
		{"public page", "/about", nil, http.StatusOK, ""},
		{"similar prefix", "/administration", nil, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Gate(okHandler()).ServeHTTP(rec, requestAs(http.MethodGet, tt.path, tt.user))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}

func TestRequireAdminAPI(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.SessionUser
		wantCode int
		wantErr  string
	}{
		{"anonymous", nil, http.StatusUnauthorized, "unauthorized"},
		{"reader", readerUser, http.StatusForbidden, "forbidden"},
		{"admin", adminUser, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdminAPI(okHandler()).ServeHTTP(rec, requestAs(http.MethodGet, "/api/admin/articles", tt.user))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantErr == "" {
				return
			}
			var body APIError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error.Code != tt.wantErr {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantErr)
			}
		})
	}
}
