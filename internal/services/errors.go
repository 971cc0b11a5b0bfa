package services

import (
	"errors"
	"net/http"
)

// Error kinds for each stage of a run. Match them with errors.Is.
var (
	ErrConfig     = errors.New("generative model not configured")
	ErrValidation = errors.New("invalid request body")
	ErrFetch      = errors.New("failed to download the document")
	ErrExtract    = errors.New("failed to extract text from the document")
	ErrModel      = errors.New("an error occurred with the generative model")
	ErrCleanup    = errors.New("failed to remove temporary file")
)

// StageError ties an underlying cause to one of the error kinds above.
type StageError struct {
	Kind error
	Err  error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StageError) Is(target error) bool { return target == e.Kind }

func (e *StageError) Unwrap() error { return e.Err }

func stageError(kind, err error) error {
	return &StageError{Kind: kind, Err: err}
}

// StatusCode maps an error from a run onto the HTTP status returned to the caller.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
