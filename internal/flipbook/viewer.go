// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package flipbook

import (
	"context"
	"log/slog"
	"sync"

	"github.com/anandda/magazine/internal/media"
)

// State is the lifecycle state of a Viewer for its current source.
type State int

// Viewer states. Ready and Empty are terminal for a given source.
const (
	StateIdle State = iota
	StateProbing
	StateReady
	StateEmpty
)

// String returns the state name used in API responses.
func (s State) String() string {
	switch s {
	case StateProbing:
		return "probing"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	default:
		return "idle"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Viewer status messages.
const (
	MessageLoading = "Loading flipbook pages..."
	MessageEmpty   = "Opening PDF viewer..."
)

// Snapshot is a point-in-time copy of a viewer's state.
type Snapshot struct {
	Source    string    `json:"source"`
	State     State     `json:"state"`
	Loading   bool      `json:"loading"`
	Pages     []string  `json:"pages"`
	Active    int       `json:"activePage"`
	Direction Direction `json:"direction,omitempty"`
	Truncated bool      `json:"truncated"`
	Message   string    `json:"message,omitempty"`
}

// Viewer owns the flipbook state for one source at a time. Changing the
// source supersedes any probe in flight; results of a superseded probe are
// discarded.
type Viewer struct {
	prober *Prober

	mu         sync.Mutex
	gen        uint64
	source     string
	state      State
	session    Session
	truncated  bool
	cancel     context.CancelFunc
	done       chan struct{}
	onResolved func(source string, res Result)

	probes sync.WaitGroup
}

// NewViewer creates an idle viewer.
func NewViewer(prober *Prober) *Viewer {
	return &Viewer{prober: prober}
}

// OnResolved registers fn to be called after a probe commits its result.
// fn runs outside the viewer lock.
func (v *Viewer) OnResolved(fn func(source string, res Result)) {
	v.mu.Lock()
	v.onResolved = fn
	v.mu.Unlock()
}

// SetSource switches the viewer to source. A Cloudinary PDF starts a new
// probe; any other source leaves the viewer idle. Setting the current
// source again is a no-op.
func (v *Viewer) SetSource(source string) {
	src := media.NormalizeAssetURL(source)

	v.mu.Lock()
	defer v.mu.Unlock()

	if src == v.source && v.state != StateIdle {
		return
	}

	v.resetLocked(src)
	if !media.IsCloudinaryImagePDF(src) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.state = StateProbing
	v.done = make(chan struct{})

	v.probes.Add(1)
	go v.run(ctx, v.gen, src)
}

func (v *Viewer) run(ctx context.Context, gen uint64, src string) {
	defer v.probes.Done()

	res := v.prober.Probe(ctx, src)

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		slog.Debug("discarding superseded flipbook probe", "source", src, "pages", len(res.Pages))
		return
	}
	v.commitLocked(res)
	hook := v.onResolved
	v.mu.Unlock()

	slog.Debug("flipbook probe finished", "source", src, "pages", len(res.Pages), "truncated", res.Truncated)
	if hook != nil {
		hook(src, res)
	}
}

// Restore installs a previously resolved result for source without probing.
func (v *Viewer) Restore(source string, res Result) {
	src := media.NormalizeAssetURL(source)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.resetLocked(src)
	v.commitLocked(res)
}

// Close cancels any probe in flight and returns the viewer to Idle.
func (v *Viewer) Close() {
	v.mu.Lock()
	v.resetLocked("")
	v.mu.Unlock()
}

// resetLocked supersedes the current probe and clears all state.
func (v *Viewer) resetLocked(src string) {
	v.gen++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.settleLocked()

	v.source = src
	v.state = StateIdle
	v.session = Session{}
	v.truncated = false
}

func (v *Viewer) commitLocked(res Result) {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.session = NewSession(res.Pages)
	v.truncated = res.Truncated
	if v.session.Len() > 0 {
		v.state = StateReady
	} else {
		v.state = StateEmpty
	}
	v.settleLocked()
}

// settleLocked wakes every Wait call blocked on the current probe.
func (v *Viewer) settleLocked() {
	if v.done != nil {
		close(v.done)
		v.done = nil
	}
}

// Wait blocks until no probe is in flight or ctx is done. A probe that is
// superseded while waiting is followed by waiting on its successor.
func (v *Viewer) Wait(ctx context.Context) error {
	for {
		v.mu.Lock()
		done := v.done
		v.mu.Unlock()

		if done == nil {
			return nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// GoPrev turns back one page; it is a no-op on the first page.
func (v *Viewer) GoPrev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.GoPrev()
}

// GoNext turns forward one page; it is a no-op on the last page.
func (v *Viewer) GoNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.GoNext()
}

// GoTo jumps to a page, clamped to the resolved range.
func (v *Viewer) GoTo(page int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.GoTo(page)
}

// Snapshot returns a copy of the current state.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		Source:    v.source,
		State:     v.state,
		Loading:   v.state == StateProbing,
		Pages:     v.session.Pages(),
		Active:    v.session.Active(),
		Direction: v.session.Direction(),
		Truncated: v.truncated,
	}
	if snap.Pages == nil {
		snap.Pages = []string{}
	}

	switch v.state {
	case StateProbing:
		snap.Message = MessageLoading
	case StateEmpty:
		snap.Message = MessageEmpty
	}
	return snap
}
