// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/flipbook"
	"github.com/anandda/magazine/internal/media"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
	"github.com/anandda/magazine/internal/util"
)

// FlipbookKind tells a reader how an issue's document is displayed.
type FlipbookKind string

// Flipbook kinds.
const (
	FlipbookHeyzine       FlipbookKind = "heyzine"
	FlipbookCloudinaryPDF FlipbookKind = "cloudinary_pdf"
	FlipbookPDF           FlipbookKind = "pdf"
	FlipbookEmbed         FlipbookKind = "embed"
	FlipbookNone          FlipbookKind = "none"
)

// FlipbookSource picks the document an issue is read from: the flipbook
// URL, or the PDF URL when the flipbook URL is empty.
func FlipbookSource(flipbookURL string, pdfURL *string) string {
	if src := media.NormalizeAssetURL(flipbookURL); src != "" {
		return src
	}
	if pdfURL != nil {
		return media.NormalizeAssetURL(*pdfURL)
	}
	return ""
}

// ClassifyFlipbook returns the display kind for a source URL.
func ClassifyFlipbook(source string) FlipbookKind {
	switch {
	case source == "":
		return FlipbookNone
	case media.IsHeyzineFlipbook(source):
		return FlipbookHeyzine
	case media.IsCloudinaryImagePDF(source):
		return FlipbookCloudinaryPDF
	case media.IsPDFURL(source):
		return FlipbookPDF
	default:
		return FlipbookEmbed
	}
}

// FlipbookView is the reader state for one issue.
type FlipbookView struct {
	IssueID   string       `json:"issueId"`
	Kind      FlipbookKind `json:"kind"`
	ViewerURL string       `json:"viewerUrl,omitempty"`
	flipbook.Snapshot
}

// FlipbookOptions tunes a FlipbookService.
type FlipbookOptions struct {
	// Wait bounds how long a read blocks on a probe in flight.
	Wait time.Duration
	// CacheTTL is how long resolved page lists are kept.
	CacheTTL time.Duration
}

// FlipbookService keeps one viewer per magazine issue and shares resolved
// page lists through the cache.
type FlipbookService struct {
	queries *store.Queries
	prober  *flipbook.Prober
	pages   *cache.TypedCache[flipbook.Result]
	wait    time.Duration

	mu      sync.Mutex
	viewers map[string]*flipbook.Viewer
}

// NewFlipbookService creates a FlipbookService. A nil cache disables page
// list caching.
func NewFlipbookService(db *sql.DB, prober *flipbook.Prober, c cache.Cacher, opts FlipbookOptions) *FlipbookService {
	s := &FlipbookService{
		queries: store.New(db),
		prober:  prober,
		wait:    opts.Wait,
		viewers: make(map[string]*flipbook.Viewer),
	}
	if c != nil {
		s.pages = cache.NewTypedCache[flipbook.Result](c, opts.CacheTTL)
	}
	return s
}

// viewer returns the viewer for an issue, creating it on first use.
func (s *FlipbookService) viewer(issueID string) *flipbook.Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.viewers[issueID]
	if !ok {
		v = flipbook.NewViewer(s.prober)
		v.OnResolved(s.remember)
		s.viewers[issueID] = v
	}
	return v
}

// remember saves a resolved page list. Empty results are not cached.
func (s *FlipbookService) remember(source string, res flipbook.Result) {
	if s.pages == nil || len(res.Pages) == 0 {
		return
	}
	if err := s.pages.Set(context.Background(), cache.FlipbookKey(source), &res); err != nil {
		slog.Warn("failed to cache flipbook pages", "source", source, "error", err, "category", model.EventCategoryFlipbook)
	}
}

// Track points an issue's viewer at source. Cloudinary PDFs are restored
// from the cache or probed in the background; other sources leave the
// viewer idle. Tracking the current source again does nothing.
func (s *FlipbookService) Track(issueID, source string) {
	v := s.viewer(issueID)
	source = media.NormalizeAssetURL(source)

	if snap := v.Snapshot(); snap.Source == source && snap.State != flipbook.StateIdle {
		return
	}
	if ClassifyFlipbook(source) == FlipbookCloudinaryPDF && s.pages != nil {
		if res, ok := s.pages.Get(context.Background(), cache.FlipbookKey(source)); ok {
			v.Restore(source, *res)
			return
		}
	}
	v.SetSource(source)
}

// Forget closes and drops an issue's viewer.
func (s *FlipbookService) Forget(issueID string) {
	s.mu.Lock()
	v, ok := s.viewers[issueID]
	delete(s.viewers, issueID)
	s.mu.Unlock()

	if ok {
		v.Close()
	}
}

// Close cancels every probe in flight.
func (s *FlipbookService) Close() {
	s.mu.Lock()
	viewers := s.viewers
	s.viewers = make(map[string]*flipbook.Viewer)
	s.mu.Unlock()

	for _, v := range viewers {
		v.Close()
	}
}

// View returns the reader state of a published issue. It waits up to the
// configured wait for a probe to settle; a probe still running afterwards
// is reported as loading. page selects a 1-based page and nav ("prev" or
// "next") turns one page from there.
func (s *FlipbookService) View(ctx context.Context, issueID string, page int, nav string) (FlipbookView, error) {
	row, err := s.queries.GetPublishedMagazineIssue(ctx, issueID)
	if err != nil {
		return FlipbookView{}, notFound(err, "magazine issue")
	}
	source := FlipbookSource(row.FlipbookUrl, util.StringPtr(row.PdfUrl))
	kind := ClassifyFlipbook(source)

	view := FlipbookView{IssueID: row.ID, Kind: kind}
	switch kind {
	case FlipbookPDF:
		view.ViewerURL = media.PDFViewerURL(source)
	case FlipbookHeyzine, FlipbookEmbed:
		view.ViewerURL = source
	}
	if kind != FlipbookCloudinaryPDF {
		view.Snapshot = flipbook.Snapshot{Source: source, Pages: []string{}}
		return view, nil
	}

	s.Track(row.ID, source)
	v := s.viewer(row.ID)
	if s.wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, s.wait)
		err := v.Wait(waitCtx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return FlipbookView{}, err
		}
	}

	view.Snapshot = navigate(v.Snapshot(), page, nav)
	if view.State == flipbook.StateEmpty {
		view.ViewerURL = media.PDFViewerURL(source)
	}
	return view, nil
}

// navigate applies a page selection to a copy of the snapshot. The shared
// viewer keeps its own position.
func navigate(snap flipbook.Snapshot, page int, nav string) flipbook.Snapshot {
	if len(snap.Pages) == 0 {
		return snap
	}
	session := flipbook.NewSession(snap.Pages)
	if page > 0 {
		session.GoTo(page)
	}
	switch strings.ToLower(strings.TrimSpace(nav)) {
	case "prev":
		session.GoPrev()
	case "next":
		session.GoNext()
	}
	snap.Active = session.Active()
	snap.Direction = session.Direction()
	return snap
}

// Warm makes sure the pages of every published Cloudinary PDF issue are
// cached, probing those no viewer has resolved yet. It returns the number
// of issues it cached.
func (s *FlipbookService) Warm(ctx context.Context) (int, error) {
	rows, err := s.queries.ListFlipbookIssues(ctx)
	if err != nil {
		return 0, err
	}

	warmed := 0
	for _, row := range rows {
		if ctx.Err() != nil {
			return warmed, ctx.Err()
		}
		source := FlipbookSource(row.FlipbookUrl, util.StringPtr(row.PdfUrl))
		if ClassifyFlipbook(source) != FlipbookCloudinaryPDF {
			continue
		}
		if s.pages != nil {
			if _, ok := s.pages.Get(ctx, cache.FlipbookKey(source)); ok {
				continue
			}
		}

		v := s.viewer(row.ID)
		if snap := v.Snapshot(); snap.Source == source && snap.State == flipbook.StateReady {
			s.remember(source, flipbook.Result{Pages: snap.Pages, Truncated: snap.Truncated})
			warmed++
			continue
		}

		s.Track(row.ID, source)
		if err := v.Wait(ctx); err != nil {
			return warmed, err
		}
		// Empty probes are not cached.
		if v.Snapshot().State == flipbook.StateReady {
			warmed++
		}
	}
	return warmed, nil
}
