package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no API key is available
	ErrNotConfigured = errors.New("transcript extractor not configured: GEMINI_API_KEY not set")

	// ErrInvalidResponse is returned when the model output is not valid JSON
	ErrInvalidResponse = errors.New("model returned invalid JSON")
)

// ResponseError keeps the raw model output next to the decode failure
type ResponseError struct {
	Raw string
	Err error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidResponse, e.Err)
}

func (e *ResponseError) Unwrap() []error {
	return []error{ErrInvalidResponse, e.Err}
}
