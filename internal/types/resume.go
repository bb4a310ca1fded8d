// Package types provides type definitions for the resume document model
// shared across the editor, synchronizer, and persistence layers.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Section keys for the ordered section list.
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// Resume is the structured document being edited. Every list entry
// carries a caller-assigned ID that stays stable across edits; IDs are
// the only key used for update/delete addressing.
type Resume struct {
	ID             string          `json:"id"`
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Summary        string          `json:"summary"`
	Sections       []Section       `json:"sections"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Settings       DisplaySettings `json:"settings"`

	// Ephemeral editor state. OriginalResume holds a pristine copy of
	// the document while a tailoring session is in progress so a
	// discard can restore it verbatim.
	IsTailoring    bool    `json:"is_tailoring,omitempty"`
	OriginalResume *Resume `json:"original_resume,omitempty"`
	JobDescription string  `json:"job_description,omitempty"`
}

// PersonalInfo holds the contact block of a resume.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Section is an entry in the ordered section list. Hidden sections keep
// their data but are skipped by renderers.
type Section struct {
	Key     string `json:"key"`
	Visible bool   `json:"visible"`
}

// Experience is a single work history entry.
type Experience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Bullets     []string `json:"bullets"`
}

// Education is a single education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	GPA         string `json:"gpa,omitempty"`
}

// Skill is a single skill entry.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Project is a single project entry.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// DisplaySettings holds layout and formatting choices. These are
// cosmetic: changing them never consumes an undo slot.
type DisplaySettings struct {
	Template   string `json:"template"`
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
	PageSize   string `json:"page_size"`
}

// DefaultSettings returns the display settings for a blank document.
func DefaultSettings() DisplaySettings {
	return DisplaySettings{
		Template:   "classic",
		FontFamily: "Inter",
		FontSize:   11,
		PageSize:   "letter",
	}
}

// DefaultSections returns the section order for a blank document.
func DefaultSections() []Section {
	return []Section{
		{Key: SectionSummary, Visible: true},
		{Key: SectionExperience, Visible: true},
		{Key: SectionEducation, Visible: true},
		{Key: SectionSkills, Visible: true},
		{Key: SectionProjects, Visible: false},
		{Key: SectionCertifications, Visible: false},
	}
}

// NewBlankResume creates an empty document with the given identifier,
// default section ordering, and default display settings.
func NewBlankResume(id string) Resume {
	return Resume{
		ID:       id,
		Sections: DefaultSections(),
		Settings: DefaultSettings(),
	}
}

// Clone returns a structurally independent copy of the resume. Slices
// are copied element-by-element so mutating the clone never aliases the
// original; the tailoring side slot is cloned recursively.
func (r Resume) Clone() Resume {
	out := r
	out.Sections = append([]Section(nil), r.Sections...)
	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Bullets = append([]string(nil), e.Bullets...)
		out.Experience[i] = e
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = append([]Skill(nil), r.Skills...)
	out.Projects = make([]Project, len(r.Projects))
	for i, p := range r.Projects {
		p.Bullets = append([]string(nil), p.Bullets...)
		out.Projects[i] = p
	}
	out.Certifications = append([]Certification(nil), r.Certifications...)
	if r.OriginalResume != nil {
		orig := r.OriginalResume.Clone()
		out.OriginalResume = &orig
	}
	return out
}

// EntryID implementations let collection entries be addressed uniformly
// by the editor's add/update actions.

// EntryID returns the stable identifier of the entry.
func (e Experience) EntryID() string { return e.ID }

// EntryID returns the stable identifier of the entry.
func (e Education) EntryID() string { return e.ID }

// EntryID returns the stable identifier of the entry.
func (s Skill) EntryID() string { return s.ID }

// EntryID returns the stable identifier of the entry.
func (p Project) EntryID() string { return p.ID }

// EntryID returns the stable identifier of the entry.
func (c Certification) EntryID() string { return c.ID }
