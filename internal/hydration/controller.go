// Package hydration drives the one-time-per-identity replacement of the
// in-memory document with the authoritative remote version after
// authentication changes.
package hydration

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/auth"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/gateway"
	"github.com/jonathan/resume-editor/internal/localstore"
	"github.com/jonathan/resume-editor/internal/syncer"
	"github.com/jonathan/resume-editor/internal/types"
)

// Phase is the controller's state machine.
type Phase int

// Controller phases. Hydrated is terminal per identity until the
// identity changes again.
const (
	PhaseUnauthenticated Phase = iota
	PhaseHydrating
	PhaseHydrated
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseHydrating:
		return "hydrating"
	case PhaseHydrated:
		return "hydrated"
	default:
		return "unknown"
	}
}

// Config configures a Controller.
type Config struct {
	Editor *editor.Editor
	Remote gateway.Gateway
	Local  *localstore.Store
	Syncer *syncer.Synchronizer
}

// Controller watches authentication transitions and hydrates the
// document once per authenticated identity. An identity is marked
// hydrated even when the fetch fails, so a flaky backend cannot cause a
// hydration storm; a failed fetch is recorded and can be retried
// explicitly via Rehydrate.
type Controller struct {
	mu     sync.Mutex
	editor *editor.Editor
	remote gateway.Gateway
	local  *localstore.Store
	syncer *syncer.Synchronizer

	phase       Phase
	hydratedFor *uuid.UUID
	lastErr     error
}

// New creates a hydration controller.
func New(cfg Config) *Controller {
	return &Controller{
		editor: cfg.Editor,
		remote: cfg.Remote,
		local:  cfg.Local,
		syncer: cfg.Syncer,
		phase:  PhaseUnauthenticated,
	}
}

// OnAuthChange reacts to an authentication transition. It is the
// subscription target for auth.Watcher. Nothing happens while the auth
// observer is still loading; a signed-out transition leaves the
// document as last loaded.
func (c *Controller) OnAuthChange(ch auth.Change) {
	if ch.IsLoading {
		return
	}

	c.mu.Lock()
	if ch.UserID == nil {
		c.phase = PhaseUnauthenticated
		c.hydratedFor = nil
		c.lastErr = nil
		c.mu.Unlock()
		return
	}
	if c.hydratedFor != nil && *c.hydratedFor == *ch.UserID {
		// Already hydrated (or hydrating) for this identity.
		c.mu.Unlock()
		return
	}
	id := *ch.UserID
	c.phase = PhaseHydrating
	c.hydratedFor = &id
	c.mu.Unlock()

	c.hydrate(id)
}

// Rehydrate clears the hydrated mark for the current identity and
// fetches again. This is the explicit retry path after a recorded
// hydration failure.
func (c *Controller) Rehydrate(userID uuid.UUID) {
	c.mu.Lock()
	c.phase = PhaseHydrating
	c.hydratedFor = &userID
	c.lastErr = nil
	c.mu.Unlock()

	c.hydrate(userID)
}

// hydrate performs one fetch of the authoritative document and resolves
// to the hydrated phase regardless of outcome.
func (c *Controller) hydrate(userID uuid.UUID) {
	profiles, err := c.remote.List(context.Background())

	var doc types.Resume
	switch {
	case err == nil && len(profiles) > 0:
		doc = pickActive(profiles).Resume.Clone()
	case err == nil, err == gateway.ErrNotFound:
		// A legitimate first-login state, not an error: reset to blank.
		doc = types.NewBlankResume(uuid.NewString())
	default:
		// Fetch failed. Fall back to the locally cached active profile
		// instead of discarding the user's data, record the failure,
		// and still mark the identity hydrated so hydration is not
		// retried on every auth-state wobble.
		log.Printf("hydration: fetch failed for user %s, keeping local document: %v", userID, err)
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		doc = c.localFallback()
	}

	if c.editor != nil {
		c.editor.Dispatch(editor.Replace{Resume: doc})
	}
	if c.syncer != nil {
		c.syncer.ResetBaseline(doc)
	}

	c.mu.Lock()
	c.phase = PhaseHydrated
	c.mu.Unlock()
}

// localFallback returns the cached active profile's document, or the
// current editor document when the cache is empty.
func (c *Controller) localFallback() types.Resume {
	if c.local != nil {
		profiles := c.local.List()
		if len(profiles) > 0 {
			return pickActive(profiles).Resume.Clone()
		}
	}
	if c.editor != nil {
		return c.editor.Document()
	}
	return types.NewBlankResume(uuid.NewString())
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// HydratedFor returns the identity hydration last completed for, or nil.
func (c *Controller) HydratedFor() *uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydratedFor == nil {
		return nil
	}
	id := *c.hydratedFor
	return &id
}

// LastError returns the error recorded by the most recent failed
// hydration fetch, if any.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func pickActive(profiles []types.Profile) types.Profile {
	for _, p := range profiles {
		if p.IsActive {
			return p
		}
	}
	return profiles[0]
}
