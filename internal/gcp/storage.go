package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrObjectNotFound is returned when the bucket or object does not exist.
var ErrObjectNotFound = errors.New("gcs object not found")

// StorageReader streams Cloud Storage objects for gs:// document URLs.
type StorageReader struct {
	client *storage.Client
}

// NewStorageReader creates a Storage client using application default
// credentials unless opts say otherwise.
func NewStorageReader(ctx context.Context, opts ...option.ClientOption) (*StorageReader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return &StorageReader{client: client}, nil
}

// OpenObject returns a reader for gs://bucket/object. The caller closes it.
func (s *StorageReader) OpenObject(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to get GCS object reader for gs://%s/%s: %w", bucket, object, err)
	}
	return r, nil
}

func (s *StorageReader) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func isNotFound(err error) bool {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

// ParseGCSURL splits gs://bucket/path/to/object into bucket and object.
func ParseGCSURL(raw string) (bucket, object string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid GCS URL %q: %w", raw, err)
	}
	if u.Scheme != "gs" {
		return "", "", fmt.Errorf("invalid GCS URL %q: scheme must be gs", raw)
	}
	object = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return "", "", fmt.Errorf("invalid GCS URL %q: want gs://bucket/object", raw)
	}
	return u.Host, object, nil
}
