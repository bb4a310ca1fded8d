package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlankResume(t *testing.T) {
	r := NewBlankResume("doc-1")

	assert.Equal(t, "doc-1", r.ID)
	assert.Equal(t, DefaultSettings(), r.Settings)
	require.Len(t, r.Sections, 6)
	assert.Equal(t, SectionSummary, r.Sections[0].Key)
	assert.True(t, r.Sections[0].Visible)
	assert.False(t, r.IsTailoring)
	assert.Nil(t, r.OriginalResume)
}

func TestResumeClone_Independent(t *testing.T) {
	r := NewBlankResume("doc-1")
	r.Experience = []Experience{{ID: "e1", Company: "Acme", Bullets: []string{"built it"}}}
	r.Projects = []Project{{ID: "p1", Name: "Widget", Bullets: []string{"shipped it"}}}
	r.Skills = []Skill{{ID: "s1", Name: "Go"}}

	clone := r.Clone()
	clone.Experience[0].Bullets[0] = "changed"
	clone.Projects[0].Bullets[0] = "changed"
	clone.Skills[0].Name = "Rust"
	clone.Sections[0].Visible = false

	assert.Equal(t, "built it", r.Experience[0].Bullets[0])
	assert.Equal(t, "shipped it", r.Projects[0].Bullets[0])
	assert.Equal(t, "Go", r.Skills[0].Name)
	assert.True(t, r.Sections[0].Visible)
}

func TestResumeClone_CopiesSideSlot(t *testing.T) {
	pristine := NewBlankResume("doc-1")
	pristine.Summary = "pristine"

	r := NewBlankResume("doc-1")
	r.IsTailoring = true
	r.OriginalResume = &pristine

	clone := r.Clone()
	require.NotNil(t, clone.OriginalResume)
	assert.NotSame(t, r.OriginalResume, clone.OriginalResume)

	clone.OriginalResume.Summary = "changed"
	assert.Equal(t, "pristine", r.OriginalResume.Summary)
}

func TestEntryIDs(t *testing.T) {
	assert.Equal(t, "e1", Experience{ID: "e1"}.EntryID())
	assert.Equal(t, "ed1", Education{ID: "ed1"}.EntryID())
	assert.Equal(t, "s1", Skill{ID: "s1"}.EntryID())
	assert.Equal(t, "p1", Project{ID: "p1"}.EntryID())
	assert.Equal(t, "c1", Certification{ID: "c1"}.EntryID())
}
