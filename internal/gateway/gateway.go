// Package gateway defines the contract to the remote profile store and
// its HTTP client implementation. Every call is fallible; callers must
// always hold a local fallback path. Errors distinguish
// not-authenticated from not-found from transport failure because the
// synchronizer's fallback behavior differs for each.
package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/types"
)

// ProfileUpdate is a partial update to a remote profile. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Name      *string       `json:"name,omitempty"`
	Resume    *types.Resume `json:"resume,omitempty"`
	IsActive  *bool         `json:"is_active,omitempty"`
	UpdatedAt *int64        `json:"updated_at,omitempty"`
}

// Gateway is the narrow contract to the backend profile store. It is
// the authority source whenever a session exists.
type Gateway interface {
	// List returns all profiles owned by the authenticated user.
	List(ctx context.Context) ([]types.Profile, error)
	// Create stores a new named profile wrapping the given document.
	// The backend assigns the authoritative identifiers.
	Create(ctx context.Context, name string, resume types.Resume) (*types.Profile, error)
	// Update applies a partial update and returns the stored profile,
	// which may carry a corrected document identifier.
	Update(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*types.Profile, error)
	// Delete removes a profile.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Offline is a Gateway for sessions with no backend: every call reports
// not-authenticated, which routes the synchronizer to local-only
// persistence.
type Offline struct{}

// List reports not-authenticated.
func (Offline) List(context.Context) ([]types.Profile, error) {
	return nil, ErrNotAuthenticated
}

// Create reports not-authenticated.
func (Offline) Create(context.Context, string, types.Resume) (*types.Profile, error) {
	return nil, ErrNotAuthenticated
}

// Update reports not-authenticated.
func (Offline) Update(context.Context, uuid.UUID, ProfileUpdate) (*types.Profile, error) {
	return nil, ErrNotAuthenticated
}

// Delete reports not-authenticated.
func (Offline) Delete(context.Context, uuid.UUID) error {
	return ErrNotAuthenticated
}
