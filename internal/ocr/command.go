package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command implements the Extractor interface by running the tesseract binary.
// It needs no cgo and is used where libtesseract headers are unavailable.
type Command struct {
	binary    string
	languages string
}

// NewCommand creates a new Command extractor
func NewCommand(binary string, languages string) *Command {
	if binary == "" {
		binary = "tesseract"
	}
	if languages == "" {
		languages = DefaultLanguages
	}
	return &Command{
		binary:    binary,
		languages: languages,
	}
}

// ExtractText prepares the image at path and pipes it through `tesseract stdin stdout`
func (c *Command) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	prepared, err := Prepare(data)
	if err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, "stdin", "stdout", "-l", c.languages)
	cmd.Stdin = bytes.NewReader(prepared)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("running tesseract (exit %d): %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("running tesseract: %w", err)
	}
	return string(out), nil
}
