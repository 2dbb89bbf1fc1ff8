// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SanitizeFilename keeps only the base name of an uploaded file so names
// like "../../etc/passwd" cannot carry directory components.
func SanitizeFilename(filename string) (string, error) {
	filename = strings.ReplaceAll(filename, "\\", "/")
	safe := filepath.Base(filename)
	if safe == "." || safe == ".." || safe == "" || safe == "/" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return safe, nil
}
