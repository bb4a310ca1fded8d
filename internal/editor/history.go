package editor

import "github.com/jonathan/resume-editor/internal/types"

// MaxHistory is the snapshot cap. Once at cap the oldest snapshot is
// evicted on push.
const MaxHistory = 50

// State is the reducer's full state: the visible document plus the
// bounded snapshot log. Snapshots are document copies and never include
// the history itself. Index always points at the snapshot representing
// the currently visible state.
type State struct {
	Resume  types.Resume
	History []types.Resume
	Index   int
}

// NewState seeds the history with a single snapshot of the initial
// document.
func NewState(initial types.Resume) State {
	return State{
		Resume:  initial,
		History: []types.Resume{initial.Clone()},
		Index:   0,
	}
}

// push records a snapshot of the new document, first discarding any
// redo branch beyond the cursor (standard linear-undo semantics), then
// evicting the oldest snapshot if the log is at cap.
func (s State) push(next types.Resume) State {
	history := append([]types.Resume(nil), s.History[:s.Index+1]...)
	history = append(history, next.Clone())
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return State{
		Resume:  next,
		History: history,
		Index:   len(history) - 1,
	}
}

// replaceAll collapses history to a single snapshot of the new
// document. Used for hydration, profile switch, healing, and reset.
func replaceAll(next types.Resume) State {
	return NewState(next)
}

// CanUndo reports whether the cursor can move back.
func (s State) CanUndo() bool {
	return s.Index > 0
}

// CanRedo reports whether the cursor can move forward.
func (s State) CanRedo() bool {
	return s.Index < len(s.History)-1
}

// undo moves the cursor back one snapshot, clamped: outside the range
// it is a no-op, not a failure. Display settings are carried over from
// the live document so cosmetic changes are never reverted by the
// history cursor.
func (s State) undo() State {
	if !s.CanUndo() {
		return s
	}
	s.Index--
	s.Resume = s.restore(s.Index)
	return s
}

// redo moves the cursor forward one snapshot, clamped.
func (s State) redo() State {
	if !s.CanRedo() {
		return s
	}
	s.Index++
	s.Resume = s.restore(s.Index)
	return s
}

func (s State) restore(idx int) types.Resume {
	restored := s.History[idx].Clone()
	restored.Settings = s.Resume.Settings
	return restored
}
