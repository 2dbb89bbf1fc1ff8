// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anandda/magazine/internal/service"
)

// listQuery reads the public list parameters.
func listQuery(r *http.Request) service.ListQuery {
	q := r.URL.Query()
	return service.ListQuery{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
		Mode:  q.Get("mode"),
		Year:  queryInt(r, "year"),
		Page:  queryInt(r, "page"),
	}
}

// listHandler serves one page of a public list.
func listHandler[T any](what string, list func(context.Context, service.ListQuery) (service.Page[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := list(r.Context(), listQuery(r))
		if err != nil {
			WriteServiceError(w, r, err, what)
			return
		}
		WriteSuccess(w, page.Items, pageMeta(page))
	}
}

// detailHandler serves a published row and its related rows.
func detailHandler[T any](what string, get func(context.Context, string) (service.Detail[T], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteServiceError(w, r, err, what)
			return
		}
		WriteSuccess(w, detail, nil)
	}
}

// Home handles GET /api/home.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.public.Home(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, "Home")
		return
	}
	WriteSuccess(w, home, nil)
}

// Flipbook handles GET /api/magazines/{id}/flipbook?page=&nav=. The view
// reflects probe progress, so it is never cached.
func (h *Handler) Flipbook(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	view, err := h.flipbooks.View(r.Context(), chi.URLParam(r, "id"), queryInt(r, "page"), r.URL.Query().Get("nav"))
	if err != nil {
		WriteServiceError(w, r, err, "Magazine issue")
		return
	}
	WriteSuccess(w, view, nil)
}

// SpecialIssues handles GET /api/magazines/special.
func (h *Handler) SpecialIssues(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, service.SpecialIssues(), nil)
}

// SpecialIssue handles GET /api/magazines/special/{slug}.
func (h *Handler) SpecialIssue(w http.ResponseWriter, r *http.Request) {
	issue, err := service.SpecialIssue(chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err, "Special issue")
		return
	}
	WriteSuccess(w, issue, nil)
}

// RegisterPublic mounts the public read routes on r.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/home", h.Home)

	r.Get("/articles", listHandler("Article", h.public.ListArticles))
	r.Get("/articles/{id}", detailHandler("Article", h.public.GetArticle))
	r.Get("/blogs", listHandler("Blog", h.public.ListBlogs))
	r.Get("/blogs/{id}", detailHandler("Blog", h.public.GetBlog))
	r.Get("/posts", listHandler("Post", h.public.ListPosts))
	r.Get("/posts/{id}", detailHandler("Post", h.public.GetPost))
	r.Get("/events", listHandler("Event", h.public.ListEvents))
	r.Get("/events/{id}", detailHandler("Event", h.public.GetEvent))

	r.Get("/magazines", listHandler("Magazine issue", h.public.ListMagazines))
	r.Get("/magazines/special", h.SpecialIssues)
	r.Get("/magazines/special/{slug}", h.SpecialIssue)
	r.Get("/magazines/{id}", detailHandler("Magazine issue", h.public.GetMagazine))
	r.Get("/magazines/{id}/flipbook", h.Flipbook)
}
