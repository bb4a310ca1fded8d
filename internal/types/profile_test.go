package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	resume := NewBlankResume("doc-1")
	p := NewProfile("My Resume", resume)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "My Resume", p.Name)
	assert.Equal(t, "doc-1", p.Resume.ID)
	assert.Positive(t, p.UpdatedAt)
	assert.False(t, p.IsActive)
}

func TestProfileClone_Independent(t *testing.T) {
	resume := NewBlankResume("doc-1")
	resume.Skills = []Skill{{ID: "s1", Name: "Go"}}
	p := NewProfile("My Resume", resume)

	clone := p.Clone()
	clone.Resume.Skills[0].Name = "Rust"

	require.Len(t, p.Resume.Skills, 1)
	assert.Equal(t, "Go", p.Resume.Skills[0].Name)
}
