// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cloudinary

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceType(t *testing.T) {
	tests := []struct {
		filename string
		mimeType string
		want     string
	}{
		{"issue.pdf", "application/pdf", ResourceImage},
		{"ISSUE.PDF", "", ResourceImage},
		{"doc", "application/pdf", ResourceImage},
		{"cover.jpg", "image/jpeg", ResourceImage},
		{"clip.mp4", "video/mp4", ResourceVideo},
		{"notes.txt", "text/plain", ResourceRaw},
		{"blob", "", ResourceRaw},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ResourceType(tt.filename, tt.mimeType))
		})
	}
}

func TestUpload(t *testing.T) {
	var gotPath string
	var gotFields map[string]string
	var gotFile string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotFields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		gotFile = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/mag/a.pdf","public_id":"mag/a"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "mag", BaseURL: srv.URL})

	res, err := c.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "/v1_1/demo/image/upload", gotPath)
	assert.Equal(t, "%PDF-1.4", gotFile)
	assert.Equal(t, "key", gotFields["api_key"])
	assert.Equal(t, "mag", gotFields["folder"])
	assert.NotEmpty(t, gotFields["timestamp"])
	assert.NotEmpty(t, gotFields["signature"])

	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/mag/a.pdf", res.URL)
	assert.Equal(t, "mag/a", res.PublicID)
}

func TestUploadUpstreamError(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", BaseURL: srv.URL})
	_, err := c.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("x"))

	var upErr *UploadError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
	assert.Equal(t, "Invalid Signature", upErr.Message)
	assert.Equal(t, "/v1_1/demo/raw/upload", gotPath)
}

func TestUploadMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"x"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", BaseURL: srv.URL})
	_, err := c.Upload(context.Background(), "clip.mp4", "video/mp4", strings.NewReader("x"))

	var upErr *UploadError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusBadGateway, upErr.StatusCode)
}

func TestUploadNotConfigured(t *testing.T) {
	c := NewClient(Config{CloudName: "demo"})
	assert.False(t, c.Configured())

	_, err := c.Upload(context.Background(), "a.pdf", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}
