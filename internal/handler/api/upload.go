// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/anandda/magazine/internal/cloudinary"
	"github.com/anandda/magazine/internal/imaging"
	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
)

// Upload error messages.
const (
	MessageNotConfigured = "Cloudinary environment variables are not configured."
	MessageNoFile        = "No valid file provided."
)

// multipartMemory is how much of a multipart form is kept in memory.
const multipartMemory = 32 << 20

// UploadHandler forwards admin uploads to Cloudinary.
type UploadHandler struct {
	client    *cloudinary.Client
	processor *imaging.Processor
	maxBytes  int64
}

// NewUploadHandler creates an upload handler. maxBytes limits the request
// body, zero disables the limit.
func NewUploadHandler(client *cloudinary.Client, processor *imaging.Processor, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		client:    client,
		processor: processor,
		maxBytes:  maxBytes,
	}
}

// Cloudinary handles POST /api/upload/cloudinary.
func (h *UploadHandler) Cloudinary(w http.ResponseWriter, r *http.Request) {
	if !h.client.Configured() {
		WriteError(w, http.StatusInternalServerError, "not_configured", MessageNotConfigured, nil)
		return
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "File is too large.", nil)
			return
		}
		WriteBadRequest(w, MessageNoFile, nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, MessageNoFile, nil)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		WriteBadRequest(w, MessageNoFile, nil)
		return
	}

	filename := header.Filename
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = imaging.DetectMimeType(data)
	}

	if h.processor != nil && h.processor.IsImage(mimeType) {
		prepared, err := h.processor.Prepare(bytes.NewReader(data), filename)
		if err != nil {
			slog.Warn("image preparation failed, uploading original",
				"error", err, "filename", filename, "category", model.EventCategoryMedia)
		} else {
			data, filename, mimeType = prepared.Data, prepared.Filename, prepared.MimeType
		}
	}

	result, err := h.client.Upload(r.Context(), filename, mimeType, bytes.NewReader(data))
	if err != nil {
		var upErr *cloudinary.UploadError
		if errors.As(err, &upErr) {
			slog.Warn("cloudinary rejected upload",
				"status", upErr.StatusCode, "message", upErr.Message, "category", model.EventCategoryMedia)
			WriteError(w, upErr.StatusCode, "upload_failed", upErr.Message, nil)
			return
		}
		slog.Error("cloudinary upload failed", "error", err, "category", model.EventCategoryMedia)
		WriteInternalError(w, "Upload failed.")
		return
	}

	actor := ""
	if u := middleware.GetUser(r); u != nil {
		actor = u.ID
	}
	slog.Info("media uploaded",
		"public_id", result.PublicID, "user_id", actor, "category", model.EventCategoryMedia)
	WriteSuccess(w, result, nil)
}
