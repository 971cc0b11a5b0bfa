package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Lllllllleong/hackrx-docqa/internal/config"
	"github.com/Lllllllleong/hackrx-docqa/internal/gcp"
	"github.com/Lllllllleong/hackrx-docqa/internal/llm"
)

// NewRunFunctionFromConfig creates the model and storage clients named by cfg
// and wires them into a RunFunction. Missing clients are logged, not fatal:
// without a model every request fails with ErrConfig, and without Cloud
// Storage gs:// documents fail to download.
func NewRunFunctionFromConfig(ctx context.Context, cfg *config.Config) *RunFunction {
	var closers []io.Closer

	generator, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		slog.Warn("Generative model not configured. Run requests will fail until it is.", "provider", cfg.LLM.Provider, "error", err)
	} else if c, ok := generator.(io.Closer); ok {
		closers = append(closers, c)
	}

	var objects ObjectOpener
	if sr, err := gcp.NewStorageReader(ctx); err != nil {
		slog.Warn("Cloud Storage client unavailable. gs:// documents cannot be fetched.", "error", err)
	} else {
		objects = sr
		closers = append(closers, sr)
	}

	fetcher := NewFetcher(FetcherConfig{
		Timeout:  cfg.Fetch.Timeout,
		MaxBytes: cfg.Fetch.MaxDocumentBytes,
	}, objects)

	f := NewRunFunction(RunConfig{
		TempDir:         cfg.Fetch.TempDir,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
	}, fetcher, NewPDFExtractor(), generator)
	f.closers = closers

	slog.Info("Run function initialized.", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model, "modelConfigured", f.ModelConfigured())
	return f
}

// Close releases the clients created by NewRunFunctionFromConfig.
func (f *RunFunction) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
