package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/handler/api"
	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/scheduler"
	"github.com/anandda/magazine/internal/service"
)

// Jobs lists and triggers background jobs.
type Jobs interface {
	List() []scheduler.JobInfo
	TriggerNow(name string) error
}

// AdminHandler serves the admin landing data and maintenance endpoints.
type AdminHandler struct {
	admin *service.AdminService
	audit *service.AuditService
	cache cache.Cacher
	jobs  Jobs
}

// NewAdminHandler creates a new AdminHandler. jobs may be nil.
func NewAdminHandler(admin *service.AdminService, audit *service.AuditService, c cache.Cacher, jobs Jobs) *AdminHandler {
	return &AdminHandler{admin: admin, audit: audit, cache: c, jobs: jobs}
}

// RegisterAPI mounts the maintenance endpoints on an admin API router.
func (h *AdminHandler) RegisterAPI(r chi.Router) {
	r.Get("/audit", h.Audit)
	r.Get("/cache", h.CacheStats)
	r.Post("/cache/clear", h.ClearCache)
	r.Get("/jobs", h.ListJobs)
	r.Post("/jobs/{name}/run", h.RunJob)
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.admin.Dashboard(r.Context())
	if err != nil {
		api.WriteServiceError(w, r, err, "Dashboard")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	api.WriteSuccess(w, d, nil)
}

// Audit handles GET /api/admin/audit?limit=N.
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	entries, err := h.audit.Recent(r.Context(), limit)
	if err != nil {
		api.WriteInternalError(w, "Failed to load audit log")
		return
	}
	api.WriteSuccess(w, entries, nil)
}

// CacheStats handles GET /api/admin/cache.
func (h *AdminHandler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	sp, ok := h.cache.(cache.StatsProvider)
	if !ok {
		api.WriteSuccess(w, map[string]any{"stats": nil}, nil)
		return
	}
	api.WriteSuccess(w, map[string]any{"stats": sp.Stats()}, nil)
}

// ClearCache handles POST /api/admin/cache/clear.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Clear(r.Context()); err != nil {
		slog.Error("clearing cache", "error", err)
		api.WriteInternalError(w, "Failed to clear cache")
		return
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		sp.ResetStats()
	}

	userID := ""
	if user := middleware.GetUser(r); user != nil {
		userID = user.ID
	}
	slog.Info("cache cleared", "user_id", userID, "category", model.EventCategoryCache)
	api.WriteSuccess(w, map[string]bool{"cleared": true}, nil)
}

// ListJobs handles GET /api/admin/jobs.
func (h *AdminHandler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	jobs := []scheduler.JobInfo{}
	if h.jobs != nil {
		jobs = h.jobs.List()
	}
	api.WriteSuccess(w, jobs, nil)
}

// RunJob handles POST /api/admin/jobs/{name}/run. The job runs in the
// background; the response does not wait for it.
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.jobs == nil {
		api.WriteNotFound(w, "Job not found.")
		return
	}
	if err := h.jobs.TriggerNow(name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			api.WriteNotFound(w, "Job not found.")
			return
		}
		api.WriteInternalError(w, "Failed to start job")
		return
	}
	api.WriteJSON(w, http.StatusAccepted, api.Response{Data: map[string]string{"started": name}})
}
