// Package ocr turns uploaded label images into plain text using Tesseract.
package ocr

import (
	"context"
	"errors"
)

// DefaultLanguages is the Tesseract language set used for supplement labels
const DefaultLanguages = "kor+eng"

// ErrUnsupportedFormat is returned when an upload cannot be decoded as an image or PDF
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extractor defines the interface for OCR engines
type Extractor interface {
	// ExtractText reads the image stored at path and returns the recognized text.
	// Engine whitespace and line breaks are returned as-is.
	ExtractText(ctx context.Context, path string) (string, error)
}
