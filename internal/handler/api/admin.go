// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/service"
)

// resource wires the admin CRUD routes of one content type. Nil operations
// are not mounted.
type resource[T, I any] struct {
	what   string
	list   func(context.Context, service.AdminFilter) ([]T, error)
	get    func(context.Context, string) (T, error)
	create func(context.Context, I, *model.SessionUser) (T, error)
	update func(context.Context, string, I, *model.SessionUser) (T, error)
	remove func(context.Context, string) error
}

// adminFilter reads the admin list filters.
func adminFilter(r *http.Request) service.AdminFilter {
	q := r.URL.Query()
	return service.AdminFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Status:   q.Get("status"),
		AuthorID: strings.TrimSpace(q.Get("authorId")),
		Year:     queryInt(r, "year"),
	}
}

func (res resource[T, I]) mount(r chi.Router, path string) {
	r.Route(path, func(r chi.Router) {
		if res.list != nil {
			r.Get("/", res.handleList)
		}
		if res.create != nil {
			r.Post("/", res.handleCreate)
		}
		if res.get != nil {
			r.Get("/{id}", res.handleGet)
		}
		if res.update != nil {
			r.Put("/{id}", res.handleUpdate)
		}
		if res.remove != nil {
			r.Delete("/{id}", res.handleDelete)
		}
	})
}

func (res resource[T, I]) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := res.list(r.Context(), adminFilter(r))
	if err != nil {
		WriteServiceError(w, r, err, res.what)
		return
	}
	WriteSuccess(w, rows, &Meta{Total: int64(len(rows))})
}

func (res resource[T, I]) handleGet(w http.ResponseWriter, r *http.Request) {
	row, err := res.get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err, res.what)
		return
	}
	WriteSuccess(w, row, nil)
}

func (res resource[T, I]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in I
	if !decodeJSON(w, r, &in) {
		return
	}
	row, err := res.create(r.Context(), in, middleware.GetUser(r))
	if err != nil {
		WriteServiceError(w, r, err, res.what)
		return
	}
	WriteCreated(w, row)
}

func (res resource[T, I]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in I
	if !decodeJSON(w, r, &in) {
		return
	}
	row, err := res.update(r.Context(), chi.URLParam(r, "id"), in, middleware.GetUser(r))
	if err != nil {
		WriteServiceError(w, r, err, res.what)
		return
	}
	WriteSuccess(w, row, nil)
}

func (res resource[T, I]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := res.remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, err, res.what)
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}

// noActor adapts a create operation that does not record its author.
func noActor[T, I any](fn func(context.Context, I) (T, error)) func(context.Context, I, *model.SessionUser) (T, error) {
	return func(ctx context.Context, in I, _ *model.SessionUser) (T, error) {
		return fn(ctx, in)
	}
}

// noActorUpdate adapts an update operation that does not record its author.
func noActorUpdate[T, I any](fn func(context.Context, string, I) (T, error)) func(context.Context, string, I, *model.SessionUser) (T, error) {
	return func(ctx context.Context, id string, in I, _ *model.SessionUser) (T, error) {
		return fn(ctx, id, in)
	}
}

// RegisterAdmin mounts the admin content routes on r. The caller is
// responsible for restricting r to admins.
func (h *Handler) RegisterAdmin(r chi.Router) {
	a := h.admin

	resource[model.Article, service.ArticleInput]{
		what: "Article", list: a.ListArticles, get: a.GetArticle,
		create: a.CreateArticle, update: a.UpdateArticle, remove: a.DeleteArticle,
	}.mount(r, "/articles")

	resource[model.Blog, service.BlogInput]{
		what: "Blog", list: a.ListBlogs, get: a.GetBlog,
		create: a.CreateBlog, update: a.UpdateBlog, remove: a.DeleteBlog,
	}.mount(r, "/blogs")

	resource[model.Event, service.EventInput]{
		what: "Event", list: a.ListEvents, get: a.GetEvent,
		create: noActor(a.CreateEvent), update: noActorUpdate(a.UpdateEvent), remove: a.DeleteEvent,
	}.mount(r, "/events")

	resource[model.MagazineIssue, service.MagazineInput]{
		what: "Magazine issue", list: a.ListMagazines, get: a.GetMagazine,
		create: noActor(a.CreateMagazine), update: noActorUpdate(a.UpdateMagazine), remove: a.DeleteMagazine,
	}.mount(r, "/magazine-issues")

	resource[model.PressItem, service.PressInput]{
		what: "Press item", list: a.ListPress, get: a.GetPress,
		create: noActor(a.CreatePress), update: noActorUpdate(a.UpdatePress), remove: a.DeletePress,
	}.mount(r, "/press")

	resource[model.Tag, service.TaxonomyInput]{
		what:   "Tag",
		list:   func(ctx context.Context, _ service.AdminFilter) ([]model.Tag, error) { return a.ListTags(ctx) },
		create: noActor(a.SaveTag),
		remove: a.DeleteTag,
	}.mount(r, "/tags")

	resource[model.Category, service.TaxonomyInput]{
		what: "Category",
		list: func(ctx context.Context, _ service.AdminFilter) ([]model.Category, error) {
			return a.ListCategories(ctx)
		},
		create: noActor(a.CreateCategory),
		update: noActorUpdate(a.UpdateCategory),
		remove: a.DeleteCategory,
	}.mount(r, "/categories")
}
