package hydration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/auth"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/gateway"
	"github.com/jonathan/resume-editor/internal/localstore"
	"github.com/jonathan/resume-editor/internal/syncer"
	"github.com/jonathan/resume-editor/internal/types"
)

// fakeGateway serves a scripted profile list and counts fetches.
type fakeGateway struct {
	mu        sync.Mutex
	profiles  []types.Profile
	listErr   error
	listCalls int
}

func (f *fakeGateway) List(context.Context) ([]types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.profiles, nil
}

func (f *fakeGateway) Create(context.Context, string, types.Resume) (*types.Profile, error) {
	return nil, gateway.ErrNotAuthenticated
}

func (f *fakeGateway) Update(context.Context, uuid.UUID, gateway.ProfileUpdate) (*types.Profile, error) {
	return nil, gateway.ErrNotAuthenticated
}

func (f *fakeGateway) Delete(context.Context, uuid.UUID) error {
	return gateway.ErrNotAuthenticated
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fixture struct {
	editor  *editor.Editor
	store   *localstore.Store
	remote  *fakeGateway
	syncer  *syncer.Synchronizer
	ctrl    *Controller
	session bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		editor: editor.New(types.NewBlankResume(uuid.NewString())),
		store:  localstore.New(filepath.Join(t.TempDir(), "profiles.json")),
		remote: &fakeGateway{},
	}
	f.syncer = syncer.New(syncer.Config{
		Local:    f.store,
		Remote:   f.remote,
		Session:  syncer.SessionFunc(func() bool { return f.session }),
		Editor:   f.editor,
		Debounce: 20 * time.Millisecond,
	})
	t.Cleanup(f.syncer.Close)
	f.ctrl = New(Config{
		Editor: f.editor,
		Remote: f.remote,
		Local:  f.store,
		Syncer: f.syncer,
	})
	return f
}

func signedIn(id uuid.UUID) auth.Change {
	return auth.Change{UserID: &id}
}

func TestOnAuthChange_IgnoredWhileLoading(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.ctrl.OnAuthChange(auth.Change{UserID: &id, IsLoading: true})

	if got := f.ctrl.Phase(); got != PhaseUnauthenticated {
		t.Errorf("phase = %v, want PhaseUnauthenticated", got)
	}
	if f.remote.calls() != 0 {
		t.Error("no fetch should happen while auth state is loading")
	}
}

func TestOnAuthChange_SignedOutClearsState(t *testing.T) {
	f := newFixture(t)
	f.remote.profiles = []types.Profile{activeProfile("remote doc")}
	f.ctrl.OnAuthChange(signedIn(uuid.New()))

	f.ctrl.OnAuthChange(auth.Change{UserID: nil})

	if got := f.ctrl.Phase(); got != PhaseUnauthenticated {
		t.Errorf("phase = %v, want PhaseUnauthenticated", got)
	}
	if f.ctrl.HydratedFor() != nil {
		t.Error("hydrated identity should be cleared on sign-out")
	}
}

func TestOnAuthChange_HydratesActiveProfile(t *testing.T) {
	f := newFixture(t)
	p := activeProfile("remote doc")
	f.remote.profiles = []types.Profile{p}
	id := uuid.New()

	f.ctrl.OnAuthChange(signedIn(id))

	if got := f.ctrl.Phase(); got != PhaseHydrated {
		t.Fatalf("phase = %v, want PhaseHydrated", got)
	}
	if got := f.ctrl.HydratedFor(); got == nil || *got != id {
		t.Errorf("HydratedFor = %v, want %s", got, id)
	}
	if doc := f.editor.Document(); doc.Summary != "remote doc" {
		t.Errorf("document summary = %q, want the remote document", doc.Summary)
	}
	if f.editor.CanUndo() {
		t.Error("hydration must collapse history")
	}
}

func TestOnAuthChange_SameIdentityHydratesOnce(t *testing.T) {
	f := newFixture(t)
	f.remote.profiles = []types.Profile{activeProfile("remote doc")}
	id := uuid.New()

	f.ctrl.OnAuthChange(signedIn(id))
	f.ctrl.OnAuthChange(signedIn(id))
	f.ctrl.OnAuthChange(signedIn(id))

	if got := f.remote.calls(); got != 1 {
		t.Errorf("fetches = %d, want 1 per identity", got)
	}
}

func TestOnAuthChange_NewIdentityHydratesAgain(t *testing.T) {
	f := newFixture(t)
	f.remote.profiles = []types.Profile{activeProfile("remote doc")}

	f.ctrl.OnAuthChange(signedIn(uuid.New()))
	f.ctrl.OnAuthChange(signedIn(uuid.New()))

	if got := f.remote.calls(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestOnAuthChange_EmptyRemoteLoadsBlank(t *testing.T) {
	f := newFixture(t)
	before := f.editor.Document().ID

	f.ctrl.OnAuthChange(signedIn(uuid.New()))

	doc := f.editor.Document()
	if doc.ID == before || doc.ID == "" {
		t.Errorf("expected a fresh blank document, got ID %q", doc.ID)
	}
	if doc.Summary != "" || len(doc.Experience) != 0 {
		t.Errorf("expected a blank document: %+v", doc)
	}
	if got := f.ctrl.Phase(); got != PhaseHydrated {
		t.Errorf("phase = %v, want PhaseHydrated", got)
	}
}

func TestOnAuthChange_NotFoundLoadsBlank(t *testing.T) {
	f := newFixture(t)
	f.remote.listErr = gateway.ErrNotFound

	f.ctrl.OnAuthChange(signedIn(uuid.New()))

	if got := f.ctrl.Phase(); got != PhaseHydrated {
		t.Errorf("phase = %v, want PhaseHydrated", got)
	}
	if f.ctrl.LastError() != nil {
		t.Errorf("not-found is a first-login state, not an error: %v", f.ctrl.LastError())
	}
}

func TestOnAuthChange_FetchFailureKeepsCachedDocument(t *testing.T) {
	f := newFixture(t)
	cached := activeProfile("cached doc")
	f.store.Save([]types.Profile{cached})
	f.remote.listErr = &gateway.TransportError{URL: "http://api", Status: 503}
	id := uuid.New()

	f.ctrl.OnAuthChange(signedIn(id))

	if doc := f.editor.Document(); doc.Summary != "cached doc" {
		t.Errorf("document summary = %q, want the cached document", doc.Summary)
	}
	if f.ctrl.LastError() == nil {
		t.Error("failed fetch should be recorded")
	}
	// Marked hydrated regardless, so auth wobble cannot cause a storm.
	if got := f.ctrl.Phase(); got != PhaseHydrated {
		t.Errorf("phase = %v, want PhaseHydrated", got)
	}
	if got := f.remote.calls(); got != 1 {
		t.Fatalf("fetches = %d", got)
	}
	f.ctrl.OnAuthChange(signedIn(id))
	if got := f.remote.calls(); got != 1 {
		t.Errorf("failed hydration retried implicitly: %d fetches", got)
	}
}

func TestRehydrate_RetriesExplicitly(t *testing.T) {
	f := newFixture(t)
	f.remote.listErr = &gateway.TransportError{URL: "http://api", Status: 503}
	id := uuid.New()
	f.ctrl.OnAuthChange(signedIn(id))

	f.remote.mu.Lock()
	f.remote.listErr = nil
	f.remote.profiles = []types.Profile{activeProfile("recovered doc")}
	f.remote.mu.Unlock()

	f.ctrl.Rehydrate(id)

	if doc := f.editor.Document(); doc.Summary != "recovered doc" {
		t.Errorf("document summary = %q, want the recovered document", doc.Summary)
	}
	if f.ctrl.LastError() != nil {
		t.Errorf("LastError should clear on successful rehydrate: %v", f.ctrl.LastError())
	}
}

func TestHydration_DoesNotTriggerAutosave(t *testing.T) {
	f := newFixture(t)
	f.remote.profiles = []types.Profile{activeProfile("remote doc")}

	f.ctrl.OnAuthChange(signedIn(uuid.New()))
	time.Sleep(100 * time.Millisecond)

	// The hydration replacement must not be written back anywhere.
	if got := f.store.List(); len(got) != 0 {
		t.Errorf("hydration caused an autosave: %+v", got)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseUnauthenticated, "unauthenticated"},
		{PhaseHydrating, "hydrating"},
		{PhaseHydrated, "hydrated"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func activeProfile(summary string) types.Profile {
	resume := types.NewBlankResume(uuid.NewString())
	resume.Summary = summary
	p := types.NewProfile("Profile", resume)
	p.IsActive = true
	return p
}
