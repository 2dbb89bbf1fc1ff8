// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging prepares raster images for upload: EXIF orientation is
// applied and oversized images are scaled down.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MIME types handled by the processor.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

const defaultQuality = 90

// Result contains a prepared image.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
	Width    int
	Height   int
	// Resized is set when the image was scaled down or re-oriented.
	Resized bool
}

// Processor prepares images before they leave the server.
type Processor struct {
	maxDimension int
	quality      int
}

// NewProcessor creates a processor that fits images within maxDimension
// pixels on their longest side. Zero disables downscaling.
func NewProcessor(maxDimension int) *Processor {
	return &Processor{
		maxDimension: maxDimension,
		quality:      defaultQuality,
	}
}

// IsImage checks if a MIME type represents an image that can be processed.
func (p *Processor) IsImage(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// Prepare reads an image, applies its EXIF orientation and scales it down to
// fit maxDimension. Images that need neither are returned unchanged.
// WebP input is re-encoded as JPEG since there is no pure Go WebP encoder.
func (p *Processor) Prepare(r io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image config: %w", err)
	}

	orientation := 1
	if format == "jpeg" {
		orientation = readExifOrientation(bytes.NewReader(data))
	}

	tooLarge := p.maxDimension > 0 && (cfg.Width > p.maxDimension || cfg.Height > p.maxDimension)
	// Animated GIFs lose their frames on re-encode; leave them alone.
	if format == "gif" || (!tooLarge && orientation == 1) {
		return &Result{
			Data:     data,
			Filename: filename,
			MimeType: formatToMimeType(format),
			Width:    cfg.Width,
			Height:   cfg.Height,
		}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img = applyOrientation(img, orientation)

	if tooLarge {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
	}

	processed, err := encodeImage(img, format, p.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	outFormat := format
	if format == "webp" {
		outFormat = "jpeg"
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	}

	bounds := img.Bounds()
	return &Result{
		Data:     processed,
		Filename: filename,
		MimeType: formatToMimeType(outFormat),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Resized:  true,
	}, nil
}

// DetectMimeType detects the MIME type of file data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "text/plain; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image to bytes with the specified format and quality.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		// JPEG, and WebP which has no pure Go encoder
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// formatToMimeType converts format string to MIME type.
func formatToMimeType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return MimeTypeJPEG
	case "png":
		return MimeTypePNG
	case "gif":
		return MimeTypeGIF
	case "webp":
		return MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}
