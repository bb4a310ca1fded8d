// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/syncer"
	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfiles outputs the profile list with the active profile marked
// and each profile's sync status.
func (p *Printer) PrintProfiles(profiles []types.Profile, status func(id uuid.UUID) syncer.Status) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Profiles: %d\n\n", len(profiles)))

	for _, profile := range profiles {
		marker := " "
		if profile.IsActive {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", marker, profile.Name))
		sb.WriteString(fmt.Sprintf("    ID:      %s\n", profile.ID))
		sb.WriteString(fmt.Sprintf("    Updated: %s\n", formatMillis(profile.UpdatedAt)))
		if status != nil {
			sb.WriteString(fmt.Sprintf("    Sync:    %s\n", status(profile.ID)))
		}
	}

	p.printBox("PROFILES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a human-readable summary of the current
// document: owner, section order, and entry counts.
func (p *Printer) PrintDocument(resume types.Resume) {
	var sb strings.Builder

	if resume.PersonalInfo.FullName != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.PersonalInfo.FullName))
	}
	if resume.PersonalInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.PersonalInfo.Email))
	}
	sb.WriteString(fmt.Sprintf("Template: %s (%s, %dpt)\n",
		resume.Settings.Template, resume.Settings.FontFamily, resume.Settings.FontSize))
	sb.WriteString("\n")

	sb.WriteString("Sections:\n")
	for _, section := range resume.Sections {
		visibility := "shown"
		if !section.Visible {
			visibility = "hidden"
		}
		sb.WriteString(fmt.Sprintf("  • %-14s %s\n", section.Key, visibility))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experience:     %d\n", len(resume.Experience)))
	sb.WriteString(fmt.Sprintf("Education:      %d\n", len(resume.Education)))
	sb.WriteString(fmt.Sprintf("Skills:         %d\n", len(resume.Skills)))
	sb.WriteString(fmt.Sprintf("Projects:       %d\n", len(resume.Projects)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(resume.Certifications)))

	if resume.IsTailoring {
		sb.WriteString("\nTailoring in progress (autosave paused)\n")
	}

	p.printBox("DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperience outputs the first few work history entries.
func (p *Printer) PrintExperience(entries []types.Experience) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("%s - %s\n", entry.Role, entry.Company))
		sb.WriteString(fmt.Sprintf("    %s to %s, %d bullets\n",
			entry.StartDate, entry.EndDate, len(entry.Bullets)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(entries)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// formatMillis renders an epoch-milliseconds timestamp.
func formatMillis(millis int64) string {
	if millis == 0 {
		return "never"
	}
	return time.UnixMilli(millis).UTC().Format("2006-01-02 15:04:05")
}
