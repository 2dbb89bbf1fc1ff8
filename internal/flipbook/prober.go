// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package flipbook discovers the pages of Cloudinary-hosted PDF issues and
// keeps the paging state of a flipbook viewer.
package flipbook

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anandda/magazine/internal/media"
)

// MaxPages bounds the number of page images probed for a single source.
const MaxPages = 120

// ImageChecker reports whether a URL can be loaded as an image.
// A false result ends probing; it is not an error.
type ImageChecker interface {
	Check(ctx context.Context, url string) bool
}

// CheckerFunc adapts a plain function to ImageChecker.
type CheckerFunc func(ctx context.Context, url string) bool

// Check calls f(ctx, url).
func (f CheckerFunc) Check(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// HTTPImageChecker checks page images with a HEAD request, retrying with a
// single-byte ranged GET when the host refuses HEAD.
type HTTPImageChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPImageChecker creates a checker with the given per-request timeout.
func NewHTTPImageChecker(timeout time.Duration) *HTTPImageChecker {
	return &HTTPImageChecker{
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

// Check returns true for a 2xx response with an image content type.
func (c *HTTPImageChecker) Check(ctx context.Context, url string) bool {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	status, contentType, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return false
	}
	if headRefused(status) {
		status, contentType, err = c.do(ctx, http.MethodGet, url)
		if err != nil {
			return false
		}
	}

	if status < 200 || status >= 300 {
		return false
	}
	return strings.HasPrefix(contentType, "image/")
}

func (c *HTTPImageChecker) do(ctx context.Context, method, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Accept", "image/*")
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()
	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

func headRefused(status int) bool {
	switch status {
	case http.StatusMethodNotAllowed, http.StatusNotImplemented, http.StatusForbidden:
		return true
	}
	return false
}

// Result is the outcome of probing one source.
type Result struct {
	// Pages holds page image URLs; Pages[i] is page i+1.
	Pages []string `json:"pages"`
	// Truncated is set when probing stopped at MaxPages.
	Truncated bool `json:"truncated"`
}

// Prober discovers page images one at a time, stopping at the first failure.
type Prober struct {
	checker  ImageChecker
	maxPages int
}

// NewProber creates a prober that probes up to MaxPages pages.
func NewProber(checker ImageChecker) *Prober {
	return &Prober{checker: checker, maxPages: MaxPages}
}

// Probe builds and checks page URLs for source in increasing page order.
// It returns the pages found before the first failed check, an
// unresolvable page URL, cancellation of ctx, or the page cap.
func (p *Prober) Probe(ctx context.Context, source string) Result {
	var res Result
	for page := 1; page <= p.maxPages; page++ {
		if ctx.Err() != nil {
			return res
		}

		pageURL := media.PageImageURL(source, page)
		if pageURL == "" {
			return res
		}
		if !p.checker.Check(ctx, pageURL) {
			return res
		}
		res.Pages = append(res.Pages, pageURL)
	}

	res.Truncated = len(res.Pages) == p.maxPages
	return res
}
