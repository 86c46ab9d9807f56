package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract implements the Extractor interface using libtesseract through gosseract
type Tesseract struct {
	languages []string
}

// NewTesseract creates a new Tesseract extractor.
// languages uses Tesseract's "+" separated form, e.g. "kor+eng".
func NewTesseract(languages string) *Tesseract {
	if languages == "" {
		languages = DefaultLanguages
	}
	return &Tesseract{languages: strings.Split(languages, "+")}
}

// ExtractText runs OCR on the image at path.
// gosseract clients are not safe for concurrent use, so each call gets its own.
func (t *Tesseract) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	prepared, err := Prepare(data)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("setting OCR languages: %w", err)
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}
