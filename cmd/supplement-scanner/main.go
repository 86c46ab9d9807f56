package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/supplement-scanner/internal/analysis"
	"github.com/zombor/supplement-scanner/internal/extraction"
	"github.com/zombor/supplement-scanner/internal/ocr"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// defaultEnvFile is loaded at startup unless SUPPLEMENT_SCANNER_ENV_FILE names another file
const defaultEnvFile = ".env"

// loadEnvFile copies variables from a .env file into the process environment.
// Variables already set are left alone and a missing file is not an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func main() {
	envFile := os.Getenv("SUPPLEMENT_SCANNER_ENV_FILE")
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := loadEnvFile(envFile); err != nil {
		slog.Error("Failed to load env file", "error", err)
		os.Exit(1)
	}

	flags := ff.NewFlagSet("supplement-scanner")
	var (
		port          = flags.IntLong("port", 8000, "HTTP server port")
		uploadDir     = flags.StringLong("upload-dir", "uploads", "Working directory for scratch files")
		ocrEngine     = flags.StringLong("ocr-engine", "library", "OCR engine: 'library' (libtesseract) or 'cli' (tesseract binary)")
		ocrLanguages  = flags.StringLong("ocr-languages", ocr.DefaultLanguages, "Tesseract languages, '+' separated")
		tesseractPath = flags.StringLong("tesseract-path", "tesseract", "Path to the tesseract binary for the cli engine")
		llmType       = flags.StringLong("llm", "gemini", "Model backend: 'gemini' or 'ollama'")
		geminiKey     = flags.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = flags.StringLong("gemini-model", extraction.DefaultGeminiModel, "Google Gemini model name")
		ollamaURL     = flags.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = flags.StringLong("ollama-model", "llama3.1", "Ollama model name")
		llmTimeout    = flags.DurationLong("llm-timeout", 60*time.Second, "Deadline for one model call")
		strictResult  = flags.BoolLong("strict-result", "Reject model replies that are not a {name, brand} JSON object")
		showVersion   = flags.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(flags, os.Args[1:],
		ff.WithEnvVarPrefix("SUPPLEMENT_SCANNER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(flags))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize OCR engine
	var extractor ocr.Extractor
	switch *ocrEngine {
	case "library":
		extractor = ocr.NewTesseract(*ocrLanguages)
	case "cli":
		extractor = ocr.NewCommand(*tesseractPath, *ocrLanguages)
	default:
		slog.Error("Invalid OCR engine", "engine", *ocrEngine, "valid", "library or cli")
		os.Exit(1)
	}
	slog.Info("Initialized OCR engine", "engine", *ocrEngine, "languages", *ocrLanguages)

	// Initialize model client once; it is shared by all requests
	var client extraction.Client
	var err error
	switch *llmType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini client...", "model", *geminiModel)
		client, err = extraction.NewGemini(apiKey, *geminiModel, *llmTimeout)
	case "ollama":
		slog.Info("Initializing Ollama client...", "url", *ollamaURL, "model", *ollamaModel)
		client, err = extraction.NewOllama(*ollamaURL, *ollamaModel, *llmTimeout)
	default:
		slog.Error("Invalid model backend", "llm", *llmType, "valid", "gemini or ollama")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize model client", "llm", *llmType, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	storage, err := analysis.NewLocalStorage(*uploadDir)
	if err != nil {
		slog.Error("Failed to initialize upload directory", "error", err)
		os.Exit(1)
	}

	service := analysis.NewService(extractor, client, storage, analysis.Options{
		StrictResult: *strictResult,
	})
	server := analysis.NewServer(service)

	addr := fmt.Sprintf(":%d", *port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)

	// Wait for interrupt signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("Server error", "error", err)
			client.Close()
			os.Exit(1)
		}
	case <-sigChan:
	}

	slog.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
