// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cloudinary uploads media files to Cloudinary with signed requests.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sdk "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Timeout for upload requests
const uploadTimeout = 60 * time.Second

// Resource types accepted by the upload API.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
	ResourceRaw   = "raw"
)

// ErrNotConfigured is returned when cloud name, API key or secret is missing.
var ErrNotConfigured = errors.New("cloudinary credentials are not configured")

// Config holds Cloudinary account settings.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	// BaseURL overrides the upload API prefix, e.g. https://api.cloudinary.com (tests).
	BaseURL string
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// UploadResult is the stable location of an uploaded asset.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// UploadError is an error reported by the Cloudinary API.
type UploadError struct {
	StatusCode int
	Message    string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("cloudinary upload failed (%d): %s", e.StatusCode, e.Message)
}

// Client uploads files to a single Cloudinary account.
type Client struct {
	cfg Config
	cld *sdk.Cloudinary
}

// NewClient creates a client for cfg. A client without credentials is
// returned as-is and reports ErrNotConfigured on upload.
func NewClient(cfg Config) *Client {
	c := &Client{cfg: cfg}
	if !cfg.Configured() {
		return c
	}

	cld, err := sdk.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return c
	}
	if cfg.BaseURL != "" {
		cld.Upload.Config.API.UploadPrefix = strings.TrimRight(cfg.BaseURL, "/")
	}
	c.cld = cld
	return c
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c != nil && c.cld != nil
}

// ResourceType picks the upload resource type for a file. PDFs are uploaded
// as images so Cloudinary can render their pages.
func ResourceType(filename, mimeType string) string {
	switch {
	case mimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return ResourceImage
	case strings.HasPrefix(mimeType, "image/"):
		return ResourceImage
	case strings.HasPrefix(mimeType, "video/"):
		return ResourceVideo
	default:
		return ResourceRaw
	}
}

// Upload sends the file to Cloudinary and returns its secure URL.
//
// The SDK decodes error bodies without exposing the HTTP status, so errors
// reported by Cloudinary surface as UploadError with status 400.
func (c *Client) Upload(ctx context.Context, filename, mimeType string, file io.Reader) (*UploadResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       c.cfg.Folder,
		ResourceType: ResourceType(filename, mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}

	if resp.Error.Message != "" {
		return nil, &UploadError{StatusCode: http.StatusBadRequest, Message: resp.Error.Message}
	}
	if resp.SecureURL == "" {
		return nil, &UploadError{StatusCode: http.StatusBadGateway, Message: "Cloudinary upload failed."}
	}

	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}
