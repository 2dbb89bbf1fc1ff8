// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the HTML templates and the Markdown static pages.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// Templates is the template tree rooted at templates/, holding
// layouts/base.html and the auth and pages directories.
var Templates = mustSub(templatesFS, "templates")

// Pages holds pages/<name>.md.
//
//go:embed pages/*.md
var Pages embed.FS

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
