package syncer

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/gateway"
	"github.com/jonathan/resume-editor/internal/types"
)

// onDocumentChanged restarts the quiet-period timer on every accepted
// edit. While the tailoring flag is set autosave is suspended entirely:
// the in-progress tailored draft is provisional and must not be
// persisted until tailoring is resolved.
func (s *Synchronizer) onDocumentChanged(doc types.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if doc.IsTailoring {
		return
	}

	snapshot := doc
	s.timer = time.AfterFunc(s.debounce, func() {
		s.flush(snapshot)
	})
}

// SaveNow persists the current document immediately, bypassing the
// debounce timer. Intended for teardown paths and one-shot tools that
// cannot wait out the quiet period.
func (s *Synchronizer) SaveNow() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	ed := s.editor
	s.mu.Unlock()

	if ed != nil {
		s.flush(ed.Document())
	}
}

// flush persists one document snapshot: to the local cache immediately,
// then to the remote gateway. Everything here is background work the
// user did not explicitly trigger, so failures are logged, never
// propagated.
func (s *Synchronizer) flush(doc types.Resume) {
	s.mu.Lock()
	if s.closed || doc.IsTailoring {
		s.mu.Unlock()
		return
	}
	fp := Fingerprint(doc)
	if fp == s.lastSaved {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.storeMu.Lock()
	profiles := s.local.List()
	active := activeIndex(profiles)
	if active < 0 {
		// Bootstrap: wrap the document in a fresh default profile.
		profile := types.NewProfile(DefaultProfileName, doc)
		profile.IsActive = true
		profiles = append(profiles, profile)
		s.local.Save(profiles)
		s.storeMu.Unlock()
		s.markSaved(fp)
		s.setStatus(profile.ID, StatusLocalOnly)
		s.pushRemote(profile)
		return
	}
	if profiles[active].Resume.ID != doc.ID {
		// The snapshot belongs to a profile that is no longer active: a
		// switch or delete raced the timer. Drop the stale write.
		s.storeMu.Unlock()
		return
	}

	profiles[active].Resume = doc
	profiles[active].UpdatedAt = types.NowMillis()
	s.local.Save(profiles)
	target := profiles[active]
	s.storeMu.Unlock()

	s.markSaved(fp)
	s.pushRemote(target)
}

func (s *Synchronizer) markSaved(fp string) {
	s.mu.Lock()
	s.lastSaved = fp
	s.mu.Unlock()
}

// pushRemote mirrors one profile's document to the backend and applies
// identity healing when the backend reports a corrected document
// identifier.
func (s *Synchronizer) pushRemote(profile types.Profile) {
	if !s.session.Authenticated() {
		s.setStatus(profile.ID, StatusLocalOnly)
		return
	}

	s.setStatus(profile.ID, StatusSyncing)

	doc := profile.Resume
	updatedAt := profile.UpdatedAt
	updated, err := s.remote.Update(context.Background(), profile.ID, gateway.ProfileUpdate{
		Resume:    &doc,
		UpdatedAt: &updatedAt,
	})
	if errors.Is(err, gateway.ErrNotFound) {
		// The backend has never seen this profile: it was created while
		// signed out or bootstrapped locally. Upload it instead.
		s.adoptRemote(profile)
		return
	}
	if err != nil {
		// Degrade to local-only persistence; the next natural trigger
		// retries.
		log.Printf("syncer: remote autosave failed: %v", err)
		s.setStatus(profile.ID, StatusLocalOnly)
		return
	}

	if updated.Resume.ID != doc.ID {
		s.mirrorProfile(*updated)
		s.heal(doc.ID, *updated)
		return
	}
	s.setStatus(profile.ID, StatusSynced)
}

// adoptRemote creates a local-only profile on the backend. The backend
// assigns its own identifiers, so the cache entry is replaced with the
// response and the document runs through identity healing when it was
// re-keyed.
func (s *Synchronizer) adoptRemote(profile types.Profile) {
	created, err := s.remote.Create(context.Background(), profile.Name, profile.Resume)
	if err != nil {
		log.Printf("syncer: remote create for local-only profile failed: %v", err)
		s.setStatus(profile.ID, StatusLocalOnly)
		return
	}

	created.IsActive = profile.IsActive
	s.replaceMirror(profile.ID, *created)
	if created.ID != profile.ID {
		s.clearStatus(profile.ID)
	}

	if created.Resume.ID != profile.Resume.ID {
		s.heal(profile.Resume.ID, *created)
		return
	}
	s.setStatus(created.ID, StatusSynced)
}

// heal feeds the backend-corrected document back into the reducer as a
// full replacement so subsequent edits address the authoritative
// identifier. The fingerprint baseline is re-derived from the healed
// state, which suppresses the write loop a bare mark-as-saved update
// would otherwise cause. Callers mirror the corrected profile first.
func (s *Synchronizer) heal(oldID string, updated types.Profile) {
	healed := updated.Resume.Clone()

	s.mu.Lock()
	s.lastSaved = Fingerprint(healed)
	s.mu.Unlock()

	if s.editor != nil {
		s.editor.Dispatch(editor.Replace{Resume: healed})
	}
	s.setStatus(updated.ID, StatusConflictHealed)
	log.Printf("syncer: healed document identity %s -> %s", oldID, updated.Resume.ID)
}

func activeIndex(profiles []types.Profile) int {
	for i := range profiles {
		if profiles[i].IsActive {
			return i
		}
	}
	return -1
}
