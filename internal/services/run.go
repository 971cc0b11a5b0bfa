package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Lllllllleong/hackrx-docqa/internal/llm"
	"github.com/Lllllllleong/hackrx-docqa/internal/models"
)

// RunPath is the route the run handler is mounted on.
const RunPath = "/api/v1/hackrx/run"

// DocumentFetcher downloads a document to a local path.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// TextExtractor returns the text of a local document.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// RunConfig holds configuration for the run handler.
type RunConfig struct {
	TempDir         string
	MaxRequestBytes int64
}

// RunFunction answers questions about a remote document. It is safe for
// concurrent use: all per-request state lives in the request.
type RunFunction struct {
	fetcher   DocumentFetcher
	extractor TextExtractor
	answerer  *Answerer
	config    RunConfig
	closers   []io.Closer
}

// NewRunFunction wires the pipeline together. A nil generator is allowed: the
// handler then fails every request with ErrConfig.
func NewRunFunction(config RunConfig, fetcher DocumentFetcher, extractor TextExtractor, generator llm.Generator) *RunFunction {
	if config.TempDir == "" {
		config.TempDir = os.TempDir()
	}
	f := &RunFunction{
		fetcher:   fetcher,
		extractor: extractor,
		config:    config,
	}
	if generator != nil {
		f.answerer = NewAnswerer(generator)
	}
	return f
}

// ModelConfigured reports whether a generator was supplied.
func (f *RunFunction) ModelConfigured() bool {
	return f.answerer != nil
}

// ServeHTTP handles POST /api/v1/hackrx/run.
func (f *RunFunction) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
		return
	}
	if !f.ModelConfigured() {
		slog.Error("Rejecting request: generative model not configured")
		writeError(w, stageError(ErrConfig, nil))
		return
	}

	var req models.RunRequest
	if f.config.MaxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, f.config.MaxRequestBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Could not decode request body", "error", err)
		writeError(w, stageError(ErrValidation, fmt.Errorf("could not parse JSON: %w", err)))
		return
	}

	res, err := f.Process(r.Context(), &req)
	if err != nil {
		// Process has already logged the cause.
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Process runs the pipeline for one request: download, extract, prompt,
// answer. The temporary document is removed on every exit path.
func (f *RunFunction) Process(ctx context.Context, req *models.RunRequest) (*models.AnswerSet, error) {
	if !f.ModelConfigured() {
		return nil, stageError(ErrConfig, nil)
	}
	if req == nil || req.Documents == nil || req.Questions == nil {
		return nil, stageError(ErrValidation, errors.New("'documents' and 'questions' are required"))
	}
	questions := *req.Questions

	doc := models.TemporaryDocument{
		RequestID: uuid.NewString(),
		SourceURL: *req.Documents,
		CreatedAt: time.Now(),
	}
	doc.Path = filepath.Join(f.config.TempDir, fmt.Sprintf("temp_document_%s.pdf", doc.RequestID))

	logCtx := slog.With("requestId", doc.RequestID, "documentUrl", doc.SourceURL)
	logCtx.Info("Processing run request.", "questionCount", len(questions), "tempPath", doc.Path)
	defer removeTemporary(logCtx, doc.Path)

	if err := f.fetcher.Fetch(ctx, doc.SourceURL, doc.Path); err != nil {
		logCtx.Error("Failed to download the document", "error", err)
		return nil, stageError(ErrFetch, err)
	}

	text, err := f.extractor.ExtractText(doc.Path)
	if err != nil {
		logCtx.Error("Failed to extract text", "error", err)
		return nil, stageError(ErrExtract, err)
	}
	if text == "" {
		logCtx.Error("Document contains no extractable text")
		return nil, stageError(ErrExtract, errors.New("document contains no extractable text"))
	}

	prompt := BuildPrompt(text, questions)
	logCtx.Debug("Built prompt.", "promptChars", len(prompt))

	answers, err := f.answerer.Answer(ctx, prompt, len(questions))
	if err != nil {
		logCtx.Error("An error occurred with the generative model", "error", err)
		return nil, err
	}

	logCtx.Info("Successfully generated answers from the document.", "answerCount", len(answers.Answers), "elapsed", time.Since(doc.CreatedAt))
	return answers, nil
}

// Health reports liveness and whether a model is configured.
func (f *RunFunction) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:          "ok",
		ModelConfigured: f.ModelConfigured(),
	})
}

// removeTemporary deletes path. Failures are logged and never returned.
func removeTemporary(logCtx *slog.Logger, path string) {
	err := os.Remove(path)
	switch {
	case err == nil:
		logCtx.Info("Removed temporary local file.", "tempPath", path)
	case errors.Is(err, fs.ErrNotExist):
	default:
		logCtx.Error("Error removing temporary file", "tempPath", path, "error", stageError(ErrCleanup, err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusCode(err), models.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
