package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/zombor/supplement-scanner/internal/extraction"
	"github.com/zombor/supplement-scanner/internal/ocr"
)

// IDGenerator generates unique scratch file IDs
type IDGenerator interface {
	Generate() string
}

// uuidGenerator generates random UUIDv4 IDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// Options tunes Service behaviour
type Options struct {
	// StrictResult rejects model replies that are not a {"name","brand"} JSON object
	StrictResult bool
}

// Service handles label analysis
type Service struct {
	extractor   ocr.Extractor
	client      extraction.Client
	storage     Storage
	opts        Options
	idGenerator IDGenerator
}

// NewService creates a new Service with the default ID generator
func NewService(extractor ocr.Extractor, client extraction.Client, storage Storage, opts Options) *Service {
	return NewServiceWithDeps(extractor, client, storage, opts, &uuidGenerator{})
}

// NewServiceWithDeps creates a new Service with a custom ID generator for testing
func NewServiceWithDeps(extractor ocr.Extractor, client extraction.Client, storage Storage, opts Options, idGen IDGenerator) *Service {
	return &Service{
		extractor:   extractor,
		client:      client,
		storage:     storage,
		opts:        opts,
		idGenerator: idGen,
	}
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// scratchName builds a per-request file name. Only a short alphanumeric
// extension is taken from the client filename.
func (s *Service) scratchName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return s.idGenerator.Generate() + ext
}

// Analyze stages data in a scratch file, runs OCR on it and asks the model for
// supplement details. The scratch file is removed before Analyze returns.
func (s *Service) Analyze(ctx context.Context, filename string, data []byte) (*Analysis, error) {
	path, err := s.storage.Save(s.scratchName(filename), data)
	if err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}
	defer func() {
		if err := s.storage.Delete(path); err != nil {
			slog.Warn("Failed to delete scratch file", "path", path, "error", err)
		}
	}()

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		slog.Error("Failed to extract text",
			"filename", filename,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("extracting text: %w", err)
	}

	reply, err := s.client.Generate(ctx, extraction.BuildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("generating result: %w", err)
	}
	result := strings.TrimSpace(reply)

	if s.opts.StrictResult {
		if _, err := extraction.ParseSupplement(result); err != nil {
			slog.Warn("Model returned malformed result", "filename", filename, "result", result)
			return nil, fmt.Errorf("validating result: %w", err)
		}
	}

	return &Analysis{
		Filename: filename,
		OCRText:  text,
		Result:   result,
	}, nil
}
