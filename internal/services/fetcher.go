package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/Lllllllleong/hackrx-docqa/internal/gcp"
)

// fetchChunkSize bounds how much of a document is held in memory at once.
const fetchChunkSize = 8192

// ObjectOpener opens Cloud Storage objects. *gcp.StorageReader implements it.
type ObjectOpener interface {
	OpenObject(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}

// FetcherConfig holds the optional limits applied to each download.
// Zero values mean no limit.
type FetcherConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

// Fetcher downloads a document to a local path. It supports http(s) URLs and,
// when an ObjectOpener is configured, gs:// URLs.
type Fetcher struct {
	client  *http.Client
	objects ObjectOpener
	config  FetcherConfig
}

// NewFetcher creates a Fetcher. objects may be nil, in which case gs:// URLs fail.
func NewFetcher(config FetcherConfig, objects ObjectOpener) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		objects: objects,
		config:  config,
	}
}

// Fetch streams rawURL into destPath. No retries are attempted. A partial file
// may be left at destPath when the copy fails midway.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destPath string) error {
	logCtx := slog.With("documentUrl", rawURL, "destPath", destPath)
	logCtx.Info("Downloading document.")

	if f.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.Timeout)
		defer cancel()
	}

	body, err := f.open(ctx, rawURL)
	if err != nil {
		logCtx.Error("Error downloading file", "error", err)
		return err
	}
	defer body.Close()

	n, err := f.copyToFile(destPath, body)
	if err != nil {
		logCtx.Error("Error writing downloaded file", "error", err)
		return err
	}

	logCtx.Info("Document saved.", "bytes", n)
	return nil
}

func (f *Fetcher) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
		}
		return resp.Body, nil
	case "gs":
		if f.objects == nil {
			return nil, errors.New("gs:// URLs require a Cloud Storage client")
		}
		bucket, object, err := gcp.ParseGCSURL(rawURL)
		if err != nil {
			return nil, err
		}
		return f.objects.OpenObject(ctx, bucket, object)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
}

func (f *Fetcher) copyToFile(destPath string, r io.Reader) (int64, error) {
	if f.config.MaxBytes > 0 {
		r = io.LimitReader(r, f.config.MaxBytes+1)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file at %s: %w", destPath, err)
	}

	// The anonymous structs hide ReadFrom/WriteTo so every copy goes through buf.
	buf := make([]byte, fetchChunkSize)
	n, err := io.CopyBuffer(struct{ io.Writer }{out}, struct{ io.Reader }{r}, buf)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("failed to copy document body: %w", err)
	}
	if f.config.MaxBytes > 0 && n > f.config.MaxBytes {
		return n, fmt.Errorf("document exceeds %d bytes", f.config.MaxBytes)
	}
	return n, nil
}
