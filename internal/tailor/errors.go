package tailor

import (
	"errors"
	"fmt"
)

// ErrNoJobDescription is returned when tailoring is requested without a
// job description to tailor against.
var ErrNoJobDescription = errors.New("job description is empty")

// APICallError represents a failure calling the LLM provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
