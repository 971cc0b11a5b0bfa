package models

// These structs define the JSON payloads exchanged on the run endpoint.

// RunRequest is the body of POST /api/v1/hackrx/run. Pointer fields let the
// handler tell an absent (or null) key apart from an empty value.
type RunRequest struct {
	Documents *string   `json:"documents"`
	Questions *[]string `json:"questions"`
}

// AnswerSet is the successful response: one answer per question, in order.
type AnswerSet struct {
	Answers []string `json:"answers"`
}

// ErrorResponse is returned with every non-200 status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is served by the standalone server's health check.
type HealthResponse struct {
	Status          string `json:"status"`
	ModelConfigured bool   `json:"modelConfigured"`
}
