// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// deliveryPattern splits a Cloudinary delivery URL into its cloud root and path tail.
	deliveryPattern = regexp.MustCompile(`(?i)^(https://res\.cloudinary\.com/[^/]+)/(?:image|raw)/upload/(.+)$`)
	// versionPattern finds the "v<digits>/..." part of a tail, after any transformations.
	versionPattern = regexp.MustCompile(`(?:^|/)(v\d+/.*)$`)
	// trailingPDFPattern matches the file extension replaced by .jpg.
	trailingPDFPattern = regexp.MustCompile(`(?i)\.pdf$`)
)

// PageImageURL returns the Cloudinary URL that renders the given page of a
// PDF as a JPEG-compatible image, or "" when the URL is not a Cloudinary PDF.
//
// Given https://res.cloudinary.com/demo/image/upload/v123/folder/doc.pdf and
// page 3 it returns
// https://res.cloudinary.com/demo/image/upload/pg_3,f_auto,q_auto/v123/folder/doc.jpg.
func PageImageURL(value string, page int) string {
	u := NormalizeAssetURL(value)
	if !IsCloudinaryImagePDF(u) {
		return ""
	}

	base, query, hasQuery := strings.Cut(u, "?")

	m := deliveryPattern.FindStringSubmatch(base)
	if m == nil {
		return ""
	}
	root, tail := m[1], m[2]

	// Drop transformation segments stored ahead of the version marker.
	if v := versionPattern.FindStringSubmatch(tail); v != nil {
		tail = v[1]
	}
	tail = trailingPDFPattern.ReplaceAllString(tail, ".jpg")

	var sb strings.Builder
	sb.WriteString(root)
	sb.WriteString("/image/upload/pg_")
	sb.WriteString(strconv.Itoa(page))
	sb.WriteString(",f_auto,q_auto/")
	sb.WriteString(tail)
	if hasQuery && query != "" {
		sb.WriteString("?")
		sb.WriteString(query)
	}
	return sb.String()
}
