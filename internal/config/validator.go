package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks value ranges. A missing model credential is not an error
// here; see LLMConfig.ModelConfigured.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if p, err := strconv.Atoi(c.Server.Port); err != nil || p < 1 || p > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "port must be a number between 1 and 65535",
		})
	}

	if c.Server.MaxRequestBytes < 1 {
		errors = append(errors, ValidationError{
			Field:   "server.max_request_bytes",
			Message: "max_request_bytes must be positive",
		})
	}

	if c.Fetch.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "fetch.timeout",
			Message: "timeout cannot be negative",
		})
	}

	if c.Fetch.MaxDocumentBytes < 0 {
		errors = append(errors, ValidationError{
			Field:   "fetch.max_document_bytes",
			Message: "max_document_bytes cannot be negative",
		})
	}

	switch c.LLM.Provider {
	case ProviderVertex, ProviderOpenAI, ProviderOllama:
	default:
		errors = append(errors, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unknown provider %q", c.LLM.Provider),
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.BaseURL != "" {
		if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.base_url",
				Message: "invalid base URL",
			})
		}
	}

	return errors
}

// JoinErrors combines validation failures into a single error, or nil.
func JoinErrors(errs []ValidationError) error {
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
