package gateway

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated indicates no valid session exists. The
// synchronizer degrades to local-only persistence.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotFound indicates the profile does not exist remotely. This is a
// valid empty state, not a failure.
var ErrNotFound = errors.New("profile not found")

// TransportError indicates the backend could not be reached or returned
// an unexpected status. The synchronizer retries on the next natural
// trigger; there is no automatic retry loop.
type TransportError struct {
	URL    string
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway transport error for %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("gateway transport error for %s: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
