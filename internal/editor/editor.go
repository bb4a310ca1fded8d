package editor

import (
	"sync"

	"github.com/jonathan/resume-editor/internal/types"
)

// Editor is the dispatch surface consumed by UIs and observed by the
// synchronizer. Dispatches are synchronous: the reducer computation
// completes before Dispatch returns, so undo/redo can never interleave
// with an in-flight mutation of the same tick.
type Editor struct {
	mu       sync.Mutex
	state    State
	watchers map[int]func(types.Resume)
	nextID   int
}

// New creates an editor seeded with the given document.
func New(initial types.Resume) *Editor {
	return &Editor{
		state:    NewState(initial),
		watchers: make(map[int]func(types.Resume)),
	}
}

// Dispatch applies an action and notifies watchers if the document
// changed.
func (e *Editor) Dispatch(a Action) {
	e.mu.Lock()
	e.state = Apply(e.state, a)
	doc := e.state.Resume.Clone()
	watchers := make([]func(types.Resume), 0, len(e.watchers))
	for _, fn := range e.watchers {
		watchers = append(watchers, fn)
	}
	e.mu.Unlock()

	for _, fn := range watchers {
		fn(doc)
	}
}

// Document returns a copy of the current document.
func (e *Editor) Document() types.Resume {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Resume.Clone()
}

// CanUndo reports whether an undo would change state.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CanUndo()
}

// CanRedo reports whether a redo would change state.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CanRedo()
}

// Undo moves the history cursor back one snapshot.
func (e *Editor) Undo() { e.Dispatch(Undo{}) }

// Redo moves the history cursor forward one snapshot.
func (e *Editor) Redo() { e.Dispatch(Redo{}) }

// HistoryLen returns the current snapshot count.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.state.History)
}

// Watch registers a callback invoked with a copy of the document after
// every dispatch. The returned cancel func removes the watcher and must
// be called on teardown.
func (e *Editor) Watch(fn func(types.Resume)) (cancel func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.watchers[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.watchers, id)
		e.mu.Unlock()
	}
}
