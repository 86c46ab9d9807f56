// Package extraction asks a generative model to pull supplement details out of OCR text.
package extraction

import (
	"context"
	"errors"
)

var (
	// ErrNoResponse is returned when the model produced no text candidates
	ErrNoResponse = errors.New("no response from model")
	// ErrMalformedResult is returned when a model reply is not the requested JSON object
	ErrMalformedResult = errors.New("malformed model result")
)

// Supplement is the object the extraction prompt asks the model to return
type Supplement struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// Client defines the interface for remote text generation backends
type Client interface {
	// Generate sends prompt to the model and blocks until the full reply is available
	Generate(ctx context.Context, prompt string) (string, error)
	// Close closes the client and releases resources
	Close() error
}
