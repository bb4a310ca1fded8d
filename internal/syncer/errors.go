package syncer

import "fmt"

// ErrLastProfile indicates an attempt to delete the only remaining
// profile. This is an explicit rejection, not a silent no-op.
type ErrLastProfile struct{}

func (e *ErrLastProfile) Error() string {
	return "cannot delete the last remaining profile"
}

// ErrProfileLimit indicates the local profile cap was reached.
type ErrProfileLimit struct {
	Max int
}

func (e *ErrProfileLimit) Error() string {
	return fmt.Sprintf("profile limit reached: at most %d profiles", e.Max)
}

// ErrProfileNotFound indicates the addressed profile does not exist.
type ErrProfileNotFound struct {
	ID string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ID)
}
