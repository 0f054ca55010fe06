package sdk

import "fmt"

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paperfind: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}
