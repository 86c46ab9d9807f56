package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
	_ "golang.org/x/image/webp" // Register WEBP decoder
)

const (
	// minOCRWidth is the width below which images are upscaled before recognition
	minOCRWidth = 1000
	// maxUpscaleFactor and maxUpscalePixels bound the upscaled canvas.
	// Images outside these bounds are recognized at their original size.
	maxUpscaleFactor = 4.0
	maxUpscalePixels = 40_000_000
	// maxDecodePixels rejects images whose declared size would not fit in memory
	maxDecodePixels = 178_956_970
)

// ErrImageTooLarge is returned when an upload declares more than maxDecodePixels pixels
var ErrImageTooLarge = errors.New("image too large")

// Prepare decodes an uploaded file (JPEG, PNG, GIF, WEBP, HEIC/HEIF or the first page
// of a PDF), converts it to grayscale, upscales small images and re-encodes the
// result as PNG for the OCR engine.
func Prepare(data []byte) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	gray := imaging.Grayscale(img)
	if w, h, ok := upscaleSize(gray.Bounds().Dx(), gray.Bounds().Dy()); ok {
		gray = imaging.Resize(gray, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// upscaleSize returns the target size for a narrow image, or ok=false when the
// image is wide enough or the upscaled canvas would exceed the bounds.
func upscaleSize(w, h int) (int, int, bool) {
	if w <= 0 || h <= 0 || w >= minOCRWidth {
		return 0, 0, false
	}
	factor := float64(minOCRWidth) / float64(w)
	if factor > maxUpscaleFactor {
		return 0, 0, false
	}
	newH := int(float64(h)*factor + 0.5)
	if int64(minOCRWidth)*int64(newH) > maxUpscalePixels {
		return 0, 0, false
	}
	return minOCRWidth, newH, true
}

func decode(data []byte) (image.Image, error) {
	switch {
	case isPDF(data):
		return pdfFirstPage(data)
	case isHEICFormat(data):
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: supported formats are JPEG, PNG, GIF, WEBP, BMP, TIFF, HEIC, HEIF, PDF", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// pdfFirstPage renders the first page of a PDF
func pdfFirstPage(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}
	return img, nil
}

func isPDF(data []byte) bool {
	return http.DetectContentType(data) == "application/pdf"
}

// isHEICFormat checks for an ftyp box with a HEIC-family brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}
