package types

import (
	"time"

	"github.com/google/uuid"
)

// MaxProfiles is the maximum number of profiles a user may hold when
// operating purely locally. The remote backend enforces its own limits.
const MaxProfiles = 4

// Profile is a named container for exactly one resume document, plus
// the bookkeeping the synchronizer needs. Across all profiles owned by
// one user, at most one has IsActive set.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Resume    Resume    `json:"resume"`
	UpdatedAt int64     `json:"updated_at"` // epoch millis
	IsActive  bool      `json:"is_active"`
}

// NewProfile creates a profile wrapping the given document with a fresh
// profile identifier and the current timestamp.
func NewProfile(name string, resume Resume) Profile {
	return Profile{
		ID:        uuid.New(),
		Name:      name,
		Resume:    resume,
		UpdatedAt: NowMillis(),
	}
}

// Clone returns a structurally independent copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	out.Resume = p.Resume.Clone()
	return out
}

// NowMillis returns the current time as epoch milliseconds, the
// timestamp unit used in the persisted profile layout.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
