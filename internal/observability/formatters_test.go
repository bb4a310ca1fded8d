package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/syncer"
	"github.com/jonathan/resume-editor/internal/types"
)

func TestPrintProfiles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	active := types.NewProfile("Main Resume", types.NewBlankResume(uuid.NewString()))
	active.IsActive = true
	other := types.NewProfile("Backend Roles", types.NewBlankResume(uuid.NewString()))

	p.PrintProfiles([]types.Profile{active, other}, func(uuid.UUID) syncer.Status {
		return syncer.StatusSynced
	})

	out := buf.String()
	if !strings.Contains(out, "PROFILES") {
		t.Errorf("missing title: %s", out)
	}
	if !strings.Contains(out, "* Main Resume") {
		t.Errorf("active profile not marked: %s", out)
	}
	if !strings.Contains(out, "Backend Roles") {
		t.Errorf("missing profile name: %s", out)
	}
	if !strings.Contains(out, "synced") {
		t.Errorf("missing sync status: %s", out)
	}
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := types.NewBlankResume(uuid.NewString())
	resume.PersonalInfo.FullName = "Jane Doe"
	resume.Experience = []types.Experience{{ID: "e1", Company: "Acme", Role: "Engineer"}}

	p.PrintDocument(resume)

	out := buf.String()
	if !strings.Contains(out, "Jane Doe") {
		t.Errorf("missing name: %s", out)
	}
	if !strings.Contains(out, "Experience:     1") {
		t.Errorf("missing entry count: %s", out)
	}
	if strings.Contains(out, "Tailoring in progress") {
		t.Errorf("tailoring note should be absent: %s", out)
	}
}

func TestPrintDocument_TailoringNote(t *testing.T) {
	var buf bytes.Buffer
	resume := types.NewBlankResume(uuid.NewString())
	resume.IsTailoring = true

	NewPrinter(&buf).PrintDocument(resume)

	if !strings.Contains(buf.String(), "Tailoring in progress") {
		t.Errorf("missing tailoring note: %s", buf.String())
	}
}

func TestFormatMillis(t *testing.T) {
	if got := formatMillis(0); got != "never" {
		t.Errorf("formatMillis(0) = %q", got)
	}
	if got := formatMillis(1700000000000); got != "2023-11-14 22:13:20" {
		t.Errorf("formatMillis = %q", got)
	}
}
