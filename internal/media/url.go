// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media normalizes stored asset URLs, classifies them, and derives
// Cloudinary page-image URLs for PDF documents.
package media

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	cloudinaryHost      = "res.cloudinary.com"
	imageUploadSegment  = "/image/upload/"
	rawUploadSegment    = "/raw/upload/"
	insecureScheme      = "http://"
	secureScheme        = "https://"
	googleDocsViewerURL = "https://docs.google.com/gview?embedded=1&url="
)

var (
	// pdfExtPattern matches a .pdf extension at the end of the path or before the query.
	pdfExtPattern = regexp.MustCompile(`(?i)\.pdf(?:$|\?)`)
	// imageExtPattern matches common raster and vector image extensions.
	imageExtPattern = regexp.MustCompile(`(?i)\.(?:png|jpe?g|webp|gif|avif|svg)(?:$|\?)`)
)

// NormalizeAssetURL trims a stored URL, removes one layer of accidental
// wrapping quotes, and upgrades http:// to https://.
func NormalizeAssetURL(value string) string {
	u := strings.TrimSpace(value)
	if u == "" {
		return ""
	}

	if isQuoted(u) {
		// A lone quote character unwraps to nothing.
		inner := ""
		if len(u) >= 2 {
			inner = u[1 : len(u)-1]
		}
		u = strings.TrimSpace(inner)
	}
	if u == "" {
		return ""
	}

	// Avoid mixed-content warnings on the HTTPS site.
	if strings.HasPrefix(u, insecureScheme) {
		u = secureScheme + u[len(insecureScheme):]
	}

	return u
}

func isQuoted(s string) bool {
	if len(s) == 0 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' || first == '\'') && first == last
}

// IsPDFURL reports whether the URL points at a PDF document. Cloudinary raw
// uploads are treated as PDFs since they carry no reliable extension.
func IsPDFURL(value string) bool {
	u := NormalizeAssetURL(value)
	if u == "" {
		return false
	}
	return pdfExtPattern.MatchString(u) || strings.Contains(u, rawUploadSegment)
}

// IsLikelyImageURL reports whether the URL most likely serves an image.
func IsLikelyImageURL(value string) bool {
	u := NormalizeAssetURL(value)
	if u == "" {
		return false
	}

	if strings.Contains(u, imageUploadSegment) {
		return true
	}
	if strings.Contains(u, rawUploadSegment) {
		return false
	}

	return imageExtPattern.MatchString(u)
}

// IsCloudinaryImagePDF reports whether the URL is a PDF hosted on Cloudinary's
// delivery host as an image or raw upload.
func IsCloudinaryImagePDF(value string) bool {
	u := NormalizeAssetURL(value)
	if u == "" {
		return false
	}

	if !strings.EqualFold(hostOf(u), cloudinaryHost) {
		return false
	}

	hasUpload := strings.Contains(u, imageUploadSegment) || strings.Contains(u, rawUploadSegment)
	return hasUpload && pdfExtPattern.MatchString(u)
}

// hostOf returns the host of an absolute http(s) URL without parsing the rest
// of it, so public IDs with stray '%' or spaces still classify.
func hostOf(u string) string {
	var rest string
	switch {
	case hasPrefixFold(u, secureScheme):
		rest = u[len(secureScheme):]
	case hasPrefixFold(u, insecureScheme):
		rest = u[len(insecureScheme):]
	default:
		return ""
	}

	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// PDFViewerURL returns a Google Docs embedded viewer URL for a PDF.
func PDFViewerURL(value string) string {
	u := NormalizeAssetURL(value)
	if u == "" {
		return ""
	}
	return googleDocsViewerURL + url.QueryEscape(u)
}

// IsHeyzineFlipbook reports whether the URL is a hosted heyzine flipbook.
func IsHeyzineFlipbook(value string) bool {
	return strings.Contains(NormalizeAssetURL(value), "heyzine.com/flip-book/")
}
