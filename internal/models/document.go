package models

import "time"

// TemporaryDocument is the per-request local copy of a downloaded document.
// It is owned by exactly one request and removed when that request finishes.
type TemporaryDocument struct {
	RequestID string
	SourceURL string
	Path      string
	CreatedAt time.Time
}
