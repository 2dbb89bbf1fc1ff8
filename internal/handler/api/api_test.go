// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/flipbook"
	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/service"
	"github.com/anandda/magazine/internal/testutil"
)

// testEnv is a router with the public and admin routes over a migrated
// database. Admin requests run as env.admin unless asUser is set.
type testEnv struct {
	router    http.Handler
	admin     *service.AdminService
	adminUser *model.SessionUser
	asUser    *model.SessionUser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 100})
	t.Cleanup(func() { _ = c.Close() })

	// No page exists, so Cloudinary PDFs resolve to the Empty state quickly.
	prober := flipbook.NewProber(flipbook.CheckerFunc(func(context.Context, string) bool { return false }))
	flipbooks := service.NewFlipbookService(db, prober, c, service.FlipbookOptions{Wait: time.Second})
	t.Cleanup(flipbooks.Close)

	admin := service.NewAdminService(db, c, flipbooks)
	h := NewHandler(service.NewPublicService(db, c, time.Minute), admin, flipbooks)

	u := testutil.CreateUser(t, db, "admin@example.com", "secret-password", model.RoleAdmin)
	env := &testEnv{
		admin:     admin,
		adminUser: &model.SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	}
	env.asUser = env.adminUser

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterPublic(r)
		r.Get("/auth/get-session", GetSession)
		r.Route("/admin", func(r chi.Router) {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					if env.asUser != nil {
						req = req.WithContext(middleware.WithUser(req.Context(), env.asUser))
					}
					next.ServeHTTP(w, req)
				})
			})
			r.Use(middleware.RequireAdminAPI)
			h.RegisterAdmin(r)
		})
	})
	env.router = r
	return env
}

// do sends a request with an optional JSON body.
func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data field of a success response into dst.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) *Meta {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
		Meta *Meta           `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if dst != nil {
		require.NoError(t, json.Unmarshal(resp.Data, dst), string(resp.Data))
	}
	return resp.Meta
}

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d: %s", expected, w.Code, w.Body.String())
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	WriteJSON(w, http.StatusOK, map[string]string{"key": "value"})

	assertStatusCode(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	WriteSuccess(w, map[string]string{"name": "test"}, &Meta{Total: 100, Page: 1, PerPage: 9, Pages: 12})

	assertStatusCode(t, w, http.StatusOK)
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Meta == nil {
		t.Fatal("expected meta to be present")
	}
	if resp.Meta.Total != 100 || resp.Meta.Pages != 12 {
		t.Errorf("unexpected meta %+v", resp.Meta)
	}
	if !strings.Contains(w.Body.String(), `"per_page":9`) {
		t.Errorf("meta should use per_page, got %s", w.Body.String())
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCreated(w, map[string]string{"id": "x"})
	assertStatusCode(t, w, http.StatusCreated)
}

func TestWriteValidationError(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]string
		message string
	}{
		{"single field uses its message", map[string]string{"slug": "Slug is required."}, "Slug is required."},
		{"several fields", map[string]string{"slug": "a", "title": "b"}, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteValidationError(w, tt.details)
			assertStatusCode(t, w, http.StatusUnprocessableEntity)
			resp := assertErrorResponse(t, w, "validation_error")
			if resp.Error.Message != tt.message {
				t.Errorf("message = %q, want %q", resp.Error.Message, tt.message)
			}
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("article x: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("slug: %w", service.ErrConflict), http.StatusConflict, "conflict"},
		{"invalid", fmt.Errorf("%w: bad", service.ErrInvalidInput), http.StatusUnprocessableEntity, "validation_error"},
		{"other", errors.New("disk full"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteServiceError(w, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.err, "Article")
			assertStatusCode(t, w, tt.status)
			resp := assertErrorResponse(t, w, tt.code)
			if strings.Contains(resp.Error.Message, "disk full") {
				t.Error("internal error text must not leak")
			}
		})
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))

	var dst map[string]any
	if decodeJSON(w, r, &dst) {
		t.Fatal("decodeJSON should fail")
	}
	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "bad_request")
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 0},
		{"page=3", 3},
		{"page=%203%20", 3},
		{"page=abc", 0},
		{"page=-2", -2},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		if got := queryInt(r, "page"); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
