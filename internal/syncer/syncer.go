// Package syncer reconciles the local cache store with the remote
// profile gateway. It owns active-profile selection, debounced
// persistence of accepted edits, and identity healing when the backend
// corrects a document identifier.
package syncer

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/gateway"
	"github.com/jonathan/resume-editor/internal/localstore"
	"github.com/jonathan/resume-editor/internal/types"
)

// DefaultDebounce is the quiet interval after the last edit before a
// persist is attempted.
const DefaultDebounce = time.Second

// DefaultProfileName names the profile created on first use.
const DefaultProfileName = "My Resume"

// Session reports whether an authenticated backend session exists. The
// remote list is authoritative only when it does.
type Session interface {
	Authenticated() bool
}

// SessionFunc adapts a func to the Session interface.
type SessionFunc func() bool

// Authenticated reports the wrapped func's result.
func (f SessionFunc) Authenticated() bool { return f() }

// Status is the per-profile sync state machine.
type Status int

// Per-profile sync states. The healed state is explicit so the
// identity-correction transition is observable and testable.
const (
	StatusLocalOnly Status = iota
	StatusSyncing
	StatusSynced
	StatusConflictHealed
)

// String returns the state name.
func (s Status) String() string {
	switch s {
	case StatusLocalOnly:
		return "local-only"
	case StatusSyncing:
		return "syncing"
	case StatusSynced:
		return "synced"
	case StatusConflictHealed:
		return "conflict-healed"
	default:
		return "unknown"
	}
}

// Config configures a Synchronizer.
type Config struct {
	Local   *localstore.Store
	Remote  gateway.Gateway
	Session Session
	Editor  *editor.Editor
	// Debounce overrides DefaultDebounce; used by tests.
	Debounce time.Duration
}

// Synchronizer mirrors accepted edits to both stores and resolves
// identity drift between them.
type Synchronizer struct {
	mu sync.Mutex
	// storeMu serializes every read-modify-write of the local cache so
	// a late-firing autosave cannot interleave with profile CRUD.
	storeMu sync.Mutex
	local   *localstore.Store
	remote  gateway.Gateway
	session Session
	editor  *editor.Editor

	debounce    time.Duration
	timer       *time.Timer
	lastSaved   string
	statuses    map[uuid.UUID]Status
	cancelWatch func()
	closed      bool
}

// New creates a synchronizer and starts observing the editor. The
// baseline fingerprint is derived from the editor's current document so
// the first autosave compares against what is already loaded.
func New(cfg Config) *Synchronizer {
	s := &Synchronizer{
		local:    cfg.Local,
		remote:   cfg.Remote,
		session:  cfg.Session,
		editor:   cfg.Editor,
		debounce: cfg.Debounce,
		statuses: make(map[uuid.UUID]Status),
	}
	if s.debounce <= 0 {
		s.debounce = DefaultDebounce
	}
	if s.remote == nil {
		s.remote = gateway.Offline{}
	}
	if s.session == nil {
		s.session = SessionFunc(func() bool { return false })
	}
	if s.editor != nil {
		s.lastSaved = Fingerprint(s.editor.Document())
		s.cancelWatch = s.editor.Watch(s.onDocumentChanged)
	}
	return s
}

// Close tears down the editor watcher and invalidates any pending
// autosave timer so a stale write cannot land after teardown.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	cancel := s.cancelWatch
	s.cancelWatch = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Fingerprint returns the canonical serialization of a document, used
// to suppress redundant writes.
func Fingerprint(r types.Resume) string {
	data, err := json.Marshal(r)
	if err != nil {
		// Resume is a plain data struct; marshal cannot fail in practice.
		return ""
	}
	return string(data)
}

// ResetBaseline invalidates any pending autosave and re-derives the
// last-persisted fingerprint from the given document. Called after a
// whole-document replacement (hydration, profile switch) so the next
// autosave compares against the fresh baseline, not stale data.
func (s *Synchronizer) ResetBaseline(r types.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.lastSaved = Fingerprint(r)
}

// Status returns the sync state for a profile.
func (s *Synchronizer) Status(id uuid.UUID) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[id]
}

// ActiveProfile returns the active profile, electing and persisting one
// if none is marked. The remote list is preferred when a session is
// authenticated; if the authoritative source errors the other store
// serves as fallback. Secondary persistence failures are swallowed: a
// failed remote update must not block local usage.
func (s *Synchronizer) ActiveProfile(ctx context.Context) (*types.Profile, error) {
	s.storeMu.Lock()
	profiles, fromRemote := s.loadProfiles(ctx)

	if len(profiles) == 0 {
		s.storeMu.Unlock()
		return s.createDefaultProfile(ctx)
	}

	for i := range profiles {
		if profiles[i].IsActive {
			p := profiles[i].Clone()
			s.storeMu.Unlock()
			return &p, nil
		}
	}

	// No profile is active: elect the first deterministically and
	// persist the election to whichever store is reachable.
	for i := range profiles {
		profiles[i].IsActive = i == 0
	}
	s.local.Save(profiles)
	s.storeMu.Unlock()
	if fromRemote {
		active := true
		if _, err := s.remote.Update(ctx, profiles[0].ID, gateway.ProfileUpdate{IsActive: &active}); err != nil {
			log.Printf("syncer: failed to persist active election remotely: %v", err)
		}
	}

	p := profiles[0].Clone()
	return &p, nil
}

// CreateProfile assigns a fresh identifier to the seed document and
// stores the new profile. The local cache is always updated as a
// read-through mirror, even when the remote call succeeds. The local
// profile cap applies only when operating purely locally; the backend
// is the source of truth for its own limits.
func (s *Synchronizer) CreateProfile(ctx context.Context, name string, seed types.Resume) (*types.Profile, error) {
	seed = seed.Clone()
	seed.ID = uuid.NewString()

	if s.session.Authenticated() {
		created, err := s.remote.Create(ctx, name, seed)
		if err == nil {
			s.mirrorProfile(*created)
			s.setStatus(created.ID, StatusSynced)
			p := created.Clone()
			return &p, nil
		}
		if err != gateway.ErrNotAuthenticated {
			log.Printf("syncer: remote create failed, falling back to local: %v", err)
		}
	}

	s.storeMu.Lock()
	profiles := s.local.List()
	if len(profiles) >= types.MaxProfiles {
		s.storeMu.Unlock()
		return nil, &ErrProfileLimit{Max: types.MaxProfiles}
	}

	profile := types.NewProfile(name, seed)
	profile.IsActive = len(profiles) == 0
	profiles = append(profiles, profile)
	s.local.Save(profiles)
	s.storeMu.Unlock()
	s.setStatus(profile.ID, StatusLocalOnly)

	p := profile.Clone()
	return &p, nil
}

// DeleteProfile removes a profile. Deleting the last remaining profile
// is refused with an explicit error. When the deleted profile was
// active, the first remaining profile is elected and the election is
// mirrored to whichever stores are reachable.
func (s *Synchronizer) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	s.storeMu.Lock()
	profiles := s.loadMirror(ctx)
	if len(profiles) <= 1 {
		s.storeMu.Unlock()
		return &ErrLastProfile{}
	}

	idx := -1
	for i := range profiles {
		if profiles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.storeMu.Unlock()
		return &ErrProfileNotFound{ID: id.String()}
	}

	wasActive := profiles[idx].IsActive
	profiles = append(profiles[:idx], profiles[idx+1:]...)
	if wasActive && len(profiles) > 0 {
		profiles[0].IsActive = true
	}
	s.local.Save(profiles)
	s.storeMu.Unlock()
	s.clearStatus(id)

	if s.session.Authenticated() {
		if err := s.remote.Delete(ctx, id); err != nil && err != gateway.ErrNotFound {
			log.Printf("syncer: remote delete failed, local mirror updated: %v", err)
		}
		if wasActive && len(profiles) > 0 {
			active := true
			if _, err := s.remote.Update(ctx, profiles[0].ID, gateway.ProfileUpdate{IsActive: &active}); err != nil {
				log.Printf("syncer: failed to mirror active election remotely: %v", err)
			}
		}
	}

	return nil
}

// RenameProfile updates a profile's display name in both stores.
func (s *Synchronizer) RenameProfile(ctx context.Context, id uuid.UUID, name string) error {
	s.storeMu.Lock()
	profiles := s.loadMirror(ctx)
	found := false
	for i := range profiles {
		if profiles[i].ID == id {
			profiles[i].Name = name
			profiles[i].UpdatedAt = types.NowMillis()
			found = true
			break
		}
	}
	if !found {
		s.storeMu.Unlock()
		return &ErrProfileNotFound{ID: id.String()}
	}
	s.local.Save(profiles)
	s.storeMu.Unlock()

	if s.session.Authenticated() {
		if _, err := s.remote.Update(ctx, id, gateway.ProfileUpdate{Name: &name}); err != nil {
			log.Printf("syncer: remote rename failed: %v", err)
		}
	}
	return nil
}

// SwitchProfile marks the given profile active, replaces the editor
// document with its resume, and resets the autosave baseline so no
// stale write targets the previous profile.
func (s *Synchronizer) SwitchProfile(ctx context.Context, id uuid.UUID) error {
	s.storeMu.Lock()
	profiles := s.loadMirror(ctx)
	var target *types.Profile
	for i := range profiles {
		profiles[i].IsActive = profiles[i].ID == id
		if profiles[i].IsActive {
			target = &profiles[i]
		}
	}
	if target == nil {
		s.storeMu.Unlock()
		return &ErrProfileNotFound{ID: id.String()}
	}
	s.local.Save(profiles)
	s.storeMu.Unlock()

	doc := target.Resume.Clone()
	if s.editor != nil {
		s.editor.Dispatch(editor.Replace{Resume: doc})
	}
	s.ResetBaseline(doc)

	if s.session.Authenticated() {
		active := true
		if _, err := s.remote.Update(ctx, id, gateway.ProfileUpdate{IsActive: &active}); err != nil {
			log.Printf("syncer: failed to mirror profile switch remotely: %v", err)
		}
	}
	return nil
}

// loadProfiles prefers the remote list when authenticated, falling back
// to the local cache on any remote failure. The second return reports
// whether the remote list was used. Callers hold storeMu.
func (s *Synchronizer) loadProfiles(ctx context.Context) ([]types.Profile, bool) {
	if s.session.Authenticated() {
		remote, err := s.remote.List(ctx)
		if err == nil {
			// Read-through mirror.
			s.local.Save(remote)
			return remote, true
		}
		if err != gateway.ErrNotAuthenticated {
			log.Printf("syncer: remote list failed, using local cache: %v", err)
		}
	}
	return s.local.List(), false
}

// loadMirror returns the freshest profile list available without
// treating remote failure as fatal. Callers hold storeMu.
func (s *Synchronizer) loadMirror(ctx context.Context) []types.Profile {
	profiles, _ := s.loadProfiles(ctx)
	return profiles
}

// createDefaultProfile bootstraps an empty store with one active
// profile wrapping a blank document.
func (s *Synchronizer) createDefaultProfile(ctx context.Context) (*types.Profile, error) {
	seed := types.NewBlankResume(uuid.NewString())
	profile, err := s.CreateProfile(ctx, DefaultProfileName, seed)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		profile.IsActive = true
		s.storeMu.Lock()
		profiles := s.local.List()
		for i := range profiles {
			profiles[i].IsActive = profiles[i].ID == profile.ID
		}
		s.local.Save(profiles)
		s.storeMu.Unlock()
	}
	return profile, nil
}

// mirrorProfile inserts or replaces one profile in the local cache.
func (s *Synchronizer) mirrorProfile(p types.Profile) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	s.mirrorLocked(p)
}

// replaceMirror swaps the cache entry stored under oldID for the
// backend's version of the profile, which may carry new identifiers.
// The replaced entry's activation flag is preserved.
func (s *Synchronizer) replaceMirror(oldID uuid.UUID, p types.Profile) {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()
	profiles := s.local.List()
	for i := range profiles {
		if profiles[i].ID == oldID {
			p.IsActive = profiles[i].IsActive
			profiles[i] = p
			s.local.Save(profiles)
			return
		}
	}
	s.mirrorLocked(p)
}

func (s *Synchronizer) mirrorLocked(p types.Profile) {
	profiles := s.local.List()
	replaced := false
	for i := range profiles {
		if profiles[i].ID == p.ID {
			profiles[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		if len(profiles) == 0 {
			p.IsActive = true
		}
		profiles = append(profiles, p)
	}
	s.local.Save(profiles)
}

func (s *Synchronizer) setStatus(id uuid.UUID, st Status) {
	s.mu.Lock()
	s.statuses[id] = st
	s.mu.Unlock()
}

func (s *Synchronizer) clearStatus(id uuid.UUID) {
	s.mu.Lock()
	delete(s.statuses, id)
	s.mu.Unlock()
}
