// Package editor implements the reducer-driven document model: a pure
// state-transition function over the resume plus a bounded undo/redo
// log, and the dispatch surface consumed by UIs.
package editor

import "github.com/jonathan/resume-editor/internal/types"

// Collection names a resume entry list for delete addressing. Add and
// update infer the collection from the entry's concrete type.
type Collection string

// Collections addressable by entry actions.
const (
	CollectionExperience     Collection = "experience"
	CollectionEducation      Collection = "education"
	CollectionSkills         Collection = "skills"
	CollectionProjects       Collection = "projects"
	CollectionCertifications Collection = "certifications"
)

// Entry is an addressable element of a resume collection.
type Entry interface {
	EntryID() string
}

// Action is a state transition applied by the reducer. Unknown action
// types are absorbed as no-ops so version skew between a UI and the
// reducer degrades gracefully instead of failing.
type Action interface {
	isAction()
}

// Replace swaps in an entirely new document. Used for hydration,
// profile switches, identity healing, and reset. Collapses history to
// a single snapshot of the new state.
type Replace struct {
	Resume types.Resume
}

// Reset replaces the document with a blank template keeping the
// current document identifier.
type Reset struct{}

// SetPersonalInfo replaces the contact block. History-eligible.
type SetPersonalInfo struct {
	Info types.PersonalInfo
}

// SetSummary replaces the summary text. History-eligible.
type SetSummary struct {
	Summary string
}

// AddEntry appends an entry to the collection matching its type.
// History-eligible.
type AddEntry struct {
	Entry Entry
}

// UpdateEntry replaces the entry with the same ID in the collection
// matching its type. Entries that address no existing ID are no-ops.
// History-eligible.
type UpdateEntry struct {
	Entry Entry
}

// RemoveEntry deletes the entry with the given ID from the named
// collection. History-eligible.
type RemoveEntry struct {
	Collection Collection
	ID         string
}

// ReorderSections replaces the ordered visible/hidden section list.
// History-eligible.
type ReorderSections struct {
	Sections []types.Section
}

// SetTemplate changes the layout template. Cosmetic: bypasses history.
type SetTemplate struct {
	Template string
}

// SetFont changes the font family and size. Cosmetic: bypasses history.
type SetFont struct {
	Family string
	Size   int
}

// SetPageSize changes the page size. Cosmetic: bypasses history.
type SetPageSize struct {
	PageSize string
}

// SetJobDescription updates the targeted job description side-channel.
// Not history-eligible.
type SetJobDescription struct {
	JobDescription string
}

// StartTailoring saves a pristine copy of the document into the side
// slot and flips the tailoring flag. No-op if already tailoring.
type StartTailoring struct{}

// ApplyTailoring keeps the tailored document, clearing the flag and the
// side slot.
type ApplyTailoring struct{}

// DiscardTailoring restores the saved pristine copy verbatim and clears
// the flag and slot. No-op when no copy is saved.
type DiscardTailoring struct{}

// Undo moves the history cursor back one snapshot. No-op at the bottom.
type Undo struct{}

// Redo moves the history cursor forward one snapshot. No-op at the top.
type Redo struct{}

func (Replace) isAction()           {}
func (Reset) isAction()             {}
func (SetPersonalInfo) isAction()   {}
func (SetSummary) isAction()        {}
func (AddEntry) isAction()          {}
func (UpdateEntry) isAction()       {}
func (RemoveEntry) isAction()       {}
func (ReorderSections) isAction()   {}
func (SetTemplate) isAction()       {}
func (SetFont) isAction()           {}
func (SetPageSize) isAction()       {}
func (SetJobDescription) isAction() {}
func (StartTailoring) isAction()    {}
func (ApplyTailoring) isAction()    {}
func (DiscardTailoring) isAction()  {}
func (Undo) isAction()              {}
func (Redo) isAction()              {}
