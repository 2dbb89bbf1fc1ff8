// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package flipbook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandda/magazine/internal/media"
)

const (
	sourceA = "https://res.cloudinary.com/demo/image/upload/v1/issues/a.pdf"
	sourceB = "https://res.cloudinary.com/demo/image/upload/v2/issues/b.pdf"
)

// pagesChecker accepts the first n pages of source.
func pagesChecker(source string, n int) CheckerFunc {
	valid := make(map[string]bool, n)
	for i := 1; i <= n; i++ {
		valid[media.PageImageURL(source, i)] = true
	}
	return func(_ context.Context, url string) bool {
		return valid[url]
	}
}

func waitSettled(t *testing.T, v *Viewer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Wait(ctx))
}

func TestProbeStopsAtFirstFailure(t *testing.T) {
	var calls atomic.Int32
	checker := CheckerFunc(func(ctx context.Context, url string) bool {
		calls.Add(1)
		return pagesChecker(sourceA, 5)(ctx, url)
	})

	res := NewProber(checker).Probe(context.Background(), sourceA)

	require.Len(t, res.Pages, 5)
	for i, page := range res.Pages {
		assert.Equal(t, media.PageImageURL(sourceA, i+1), page)
	}
	assert.False(t, res.Truncated)
	assert.Equal(t, int32(6), calls.Load(), "page 6 is probed once and ends the loop")
}

func TestProbeCap(t *testing.T) {
	var calls atomic.Int32
	checker := CheckerFunc(func(context.Context, string) bool {
		calls.Add(1)
		return true
	})

	res := NewProber(checker).Probe(context.Background(), sourceA)

	assert.Len(t, res.Pages, MaxPages)
	assert.True(t, res.Truncated)
	assert.Equal(t, int32(MaxPages), calls.Load())
}

func TestProbeUnresolvableSource(t *testing.T) {
	checker := CheckerFunc(func(context.Context, string) bool {
		t.Fatal("checker must not be called")
		return false
	})

	res := NewProber(checker).Probe(context.Background(), "https://example.com/doc.pdf")
	assert.Empty(t, res.Pages)
	assert.False(t, res.Truncated)
}

func TestProbeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := CheckerFunc(func(context.Context, string) bool {
		cancel()
		return true
	})

	res := NewProber(checker).Probe(ctx, sourceA)
	assert.Len(t, res.Pages, 1)
}

func TestViewerScenario(t *testing.T) {
	v := NewViewer(NewProber(pagesChecker(sourceA, 5)))
	assert.Equal(t, StateIdle, v.Snapshot().State)

	v.SetSource(sourceA)
	waitSettled(t, v)

	snap := v.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Pages, 5)
	assert.Equal(t, 1, snap.Active)
	assert.Empty(t, snap.Message)

	assert.False(t, v.GoPrev(), "prev on page 1 is a no-op")
	assert.Equal(t, 1, v.Snapshot().Active)
	assert.Equal(t, DirectionNone, v.Snapshot().Direction)

	for i := 0; i < 4; i++ {
		assert.True(t, v.GoNext())
	}
	snap = v.Snapshot()
	assert.Equal(t, 5, snap.Active)
	assert.Equal(t, DirectionNext, snap.Direction)

	assert.False(t, v.GoNext(), "next on the last page is a no-op")
	assert.Equal(t, 5, v.Snapshot().Active)

	assert.True(t, v.GoPrev())
	snap = v.Snapshot()
	assert.Equal(t, 4, snap.Active)
	assert.Equal(t, DirectionPrev, snap.Direction)
}

func TestViewerEmpty(t *testing.T) {
	v := NewViewer(NewProber(pagesChecker(sourceA, 0)))
	v.SetSource(sourceA)
	waitSettled(t, v)

	snap := v.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Equal(t, MessageEmpty, snap.Message)
	assert.Empty(t, snap.Pages)
	assert.NotNil(t, snap.Pages)
	assert.Equal(t, 0, snap.Active)
	assert.False(t, v.GoNext())
	assert.False(t, v.GoPrev())
}

func TestViewerNonCloudinarySourceStaysIdle(t *testing.T) {
	v := NewViewer(NewProber(CheckerFunc(func(context.Context, string) bool {
		t.Error("checker must not be called")
		return false
	})))

	v.SetSource("https://heyzine.com/flip-book/abc.html")
	waitSettled(t, v)

	snap := v.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, "https://heyzine.com/flip-book/abc.html", snap.Source)
}

func TestViewerSourceSwitchDiscardsStaleProbe(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	checkB := pagesChecker(sourceB, 2)
	checker := CheckerFunc(func(ctx context.Context, url string) bool {
		if url == media.PageImageURL(sourceA, 1) {
			once.Do(func() { close(started) })
			// Ignores ctx so the stale probe finishes after B commits.
			<-release
			return true
		}
		return checkB(ctx, url)
	})

	v := NewViewer(NewProber(checker))
	v.SetSource(sourceA)
	<-started
	assert.True(t, v.Snapshot().Loading)

	v.SetSource(sourceB)
	waitSettled(t, v)

	close(release)
	v.probes.Wait()

	snap := v.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, sourceB, snap.Source)
	require.Len(t, snap.Pages, 2)
	for _, page := range snap.Pages {
		assert.Contains(t, page, "/issues/b.jpg")
	}
}

func TestViewerWaitFollowsSupersedingProbe(t *testing.T) {
	release := make(chan struct{})
	checkB := pagesChecker(sourceB, 3)
	checker := CheckerFunc(func(ctx context.Context, url string) bool {
		if url == media.PageImageURL(sourceA, 1) {
			select {
			case <-release:
			case <-ctx.Done():
			}
			return false
		}
		return checkB(ctx, url)
	})

	v := NewViewer(NewProber(checker))
	v.SetSource(sourceA)

	waited := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		waited <- v.Wait(ctx)
	}()

	v.SetSource(sourceB)
	require.NoError(t, <-waited)
	close(release)

	waitSettled(t, v)
	assert.Len(t, v.Snapshot().Pages, 3)
}

func TestViewerWaitHonorsContext(t *testing.T) {
	checker := CheckerFunc(func(ctx context.Context, _ string) bool {
		<-ctx.Done()
		return false
	})
	v := NewViewer(NewProber(checker))
	v.SetSource(sourceA)
	defer v.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, v.Wait(ctx), context.DeadlineExceeded)
}

func TestViewerSameSourceIsNoop(t *testing.T) {
	var calls atomic.Int32
	checker := CheckerFunc(func(ctx context.Context, url string) bool {
		calls.Add(1)
		return pagesChecker(sourceA, 2)(ctx, url)
	})
	v := NewViewer(NewProber(checker))

	v.SetSource(sourceA)
	waitSettled(t, v)
	v.GoNext()

	v.SetSource(" " + sourceA + " ")
	waitSettled(t, v)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, v.Snapshot().Active)
}

func TestViewerRestoreAndResolvedHook(t *testing.T) {
	resolved := make(chan Result, 1)
	v := NewViewer(NewProber(pagesChecker(sourceA, 4)))
	v.OnResolved(func(source string, res Result) {
		assert.Equal(t, sourceA, source)
		resolved <- res
	})

	v.SetSource(sourceA)
	var got Result
	select {
	case got = <-resolved:
	case <-time.After(5 * time.Second):
		t.Fatal("probe did not resolve")
	}
	assert.Len(t, got.Pages, 4)

	other := NewViewer(NewProber(CheckerFunc(func(context.Context, string) bool {
		t.Error("restored viewer must not probe")
		return false
	})))
	other.Restore(sourceA, got)

	snap := other.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, got.Pages, snap.Pages)
	assert.Equal(t, 1, snap.Active)
}

func TestViewerClose(t *testing.T) {
	checker := CheckerFunc(func(ctx context.Context, _ string) bool {
		<-ctx.Done()
		return false
	})
	v := NewViewer(NewProber(checker))
	v.SetSource(sourceA)
	v.Close()
	waitSettled(t, v)
	v.probes.Wait()

	assert.Equal(t, StateIdle, v.Snapshot().State)
}

func TestSessionGoTo(t *testing.T) {
	s := NewSession([]string{"a", "b", "c"})
	assert.Equal(t, "a", s.Current())

	assert.True(t, s.GoTo(10))
	assert.Equal(t, 3, s.Active())
	assert.Equal(t, DirectionNext, s.Direction())
	assert.Equal(t, "c", s.Current())

	assert.False(t, s.GoTo(3))
	assert.True(t, s.GoTo(-1))
	assert.Equal(t, 1, s.Active())
	assert.Equal(t, DirectionPrev, s.Direction())

	var empty Session
	assert.False(t, empty.GoTo(1))
	assert.Equal(t, "", empty.Current())
}

func TestHTTPImageChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xff, 0xd8})
		case "/html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewHTTPImageChecker(time.Second)
	ctx := context.Background()

	assert.True(t, c.Check(ctx, srv.URL+"/ok.jpg"))
	assert.False(t, c.Check(ctx, srv.URL+"/html"))
	assert.False(t, c.Check(ctx, srv.URL+"/missing.jpg"))
	assert.False(t, c.Check(ctx, "://bad"))
}

func TestHTTPImageCheckerMethods(t *testing.T) {
	var heads, gets atomic.Int32
	var gotRange atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			heads.Add(1)
			if r.URL.Path == "/no-head.jpg" {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
		case http.MethodGet:
			gets.Add(1)
			gotRange.Store(r.Header.Get("Range"))
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Range", "bytes 0-0/2")
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write([]byte{0xff})
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
	}))
	defer srv.Close()

	c := NewHTTPImageChecker(time.Second)
	ctx := context.Background()

	t.Run("head accepted", func(t *testing.T) {
		assert.True(t, c.Check(ctx, srv.URL+"/page.jpg"))
		assert.Equal(t, int32(1), heads.Load())
		assert.Equal(t, int32(0), gets.Load(), "no body download when HEAD works")
	})

	t.Run("head refused falls back to ranged get", func(t *testing.T) {
		assert.True(t, c.Check(ctx, srv.URL+"/no-head.jpg"))
		assert.Equal(t, int32(2), heads.Load())
		assert.Equal(t, int32(1), gets.Load())
		assert.Equal(t, "bytes=0-0", gotRange.Load())
	})
}
