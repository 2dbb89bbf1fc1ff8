// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/handler/api"
	"github.com/anandda/magazine/internal/middleware"
)

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// pinger is implemented by cache backends that talk to a server.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cacher
	backend   string
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. backend names the cache
// backend in use.
func NewHealthHandler(db *sql.DB, c cache.Cacher, backend, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     c,
		backend:   backend,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the full health response, served to admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health. Anonymous callers get the status only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	cacheCheck := h.checkCache(r.Context())

	overallStatus := statusHealthy
	switch {
	case dbCheck.Status != statusHealthy:
		overallStatus = statusUnhealthy
	case cacheCheck.Status != statusHealthy:
		// Public reads fall through to the database without a cache.
		overallStatus = statusDegraded
	}

	code := http.StatusOK
	if overallStatus == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")

	user := middleware.GetUser(r)
	if user == nil || !user.IsAdmin() {
		api.WriteJSON(w, code, HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks: map[string]Check{
			"database": dbCheck,
			"cache":    cacheCheck,
		},
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	api.WriteJSON(w, code, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. Only the database gates readiness.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	if dbCheck.Status == statusHealthy {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	resp := map[string]string{"status": "not_ready"}
	if user := middleware.GetUser(r); user != nil && user.IsAdmin() {
		resp["message"] = dbCheck.Message
	}
	api.WriteJSON(w, http.StatusServiceUnavailable, resp)
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: "Connected", Latency: latency.String()}
}

// checkCache pings server-backed caches. In-process caches are always up.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: statusDegraded, Message: "No cache configured"}
	}
	p, ok := h.cache.(pinger)
	if !ok {
		return Check{Status: statusHealthy, Message: h.backend}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: statusHealthy, Message: h.backend, Latency: latency.String()}
}

func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
