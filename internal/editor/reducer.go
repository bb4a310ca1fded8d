package editor

import "github.com/jonathan/resume-editor/internal/types"

// Apply is the pure state-transition function. It never mutates its
// input and never fails: malformed or unknown actions return the input
// state unchanged.
func Apply(s State, a Action) State {
	switch act := a.(type) {
	case Replace:
		return replaceAll(act.Resume)

	case Reset:
		return replaceAll(types.NewBlankResume(s.Resume.ID))

	case SetPersonalInfo:
		next := s.Resume.Clone()
		next.PersonalInfo = act.Info
		return s.push(next)

	case SetSummary:
		next := s.Resume.Clone()
		next.Summary = act.Summary
		return s.push(next)

	case AddEntry:
		next, ok := addEntry(s.Resume.Clone(), act.Entry)
		if !ok {
			return s
		}
		return s.push(next)

	case UpdateEntry:
		next, ok := updateEntry(s.Resume.Clone(), act.Entry)
		if !ok {
			return s
		}
		return s.push(next)

	case RemoveEntry:
		next, ok := removeEntry(s.Resume.Clone(), act.Collection, act.ID)
		if !ok {
			return s
		}
		return s.push(next)

	case ReorderSections:
		next := s.Resume.Clone()
		next.Sections = append([]types.Section(nil), act.Sections...)
		return s.push(next)

	case SetTemplate:
		s.Resume.Settings.Template = act.Template
		return s

	case SetFont:
		s.Resume.Settings.FontFamily = act.Family
		s.Resume.Settings.FontSize = act.Size
		return s

	case SetPageSize:
		s.Resume.Settings.PageSize = act.PageSize
		return s

	case SetJobDescription:
		s.Resume.JobDescription = act.JobDescription
		return s

	case StartTailoring:
		if s.Resume.IsTailoring {
			return s
		}
		pristine := s.Resume.Clone()
		pristine.OriginalResume = nil
		s.Resume.OriginalResume = &pristine
		s.Resume.IsTailoring = true
		return s

	case ApplyTailoring:
		s.Resume.IsTailoring = false
		s.Resume.OriginalResume = nil
		return s

	case DiscardTailoring:
		if s.Resume.OriginalResume == nil {
			// Nothing saved: clearing the flag is still safe.
			s.Resume.IsTailoring = false
			return s
		}
		restored := s.Resume.OriginalResume.Clone()
		restored.IsTailoring = false
		restored.OriginalResume = nil
		s.Resume = restored
		return s

	case Undo:
		return s.undo()

	case Redo:
		return s.redo()

	default:
		return s
	}
}

func addEntry(r types.Resume, e Entry) (types.Resume, bool) {
	switch entry := e.(type) {
	case types.Experience:
		r.Experience = append(r.Experience, entry)
	case types.Education:
		r.Education = append(r.Education, entry)
	case types.Skill:
		r.Skills = append(r.Skills, entry)
	case types.Project:
		r.Projects = append(r.Projects, entry)
	case types.Certification:
		r.Certifications = append(r.Certifications, entry)
	default:
		return r, false
	}
	return r, true
}

func updateEntry(r types.Resume, e Entry) (types.Resume, bool) {
	switch entry := e.(type) {
	case types.Experience:
		for i := range r.Experience {
			if r.Experience[i].ID == entry.ID {
				r.Experience[i] = entry
				return r, true
			}
		}
	case types.Education:
		for i := range r.Education {
			if r.Education[i].ID == entry.ID {
				r.Education[i] = entry
				return r, true
			}
		}
	case types.Skill:
		for i := range r.Skills {
			if r.Skills[i].ID == entry.ID {
				r.Skills[i] = entry
				return r, true
			}
		}
	case types.Project:
		for i := range r.Projects {
			if r.Projects[i].ID == entry.ID {
				r.Projects[i] = entry
				return r, true
			}
		}
	case types.Certification:
		for i := range r.Certifications {
			if r.Certifications[i].ID == entry.ID {
				r.Certifications[i] = entry
				return r, true
			}
		}
	}
	return r, false
}

func removeEntry(r types.Resume, c Collection, id string) (types.Resume, bool) {
	switch c {
	case CollectionExperience:
		for i := range r.Experience {
			if r.Experience[i].ID == id {
				r.Experience = append(r.Experience[:i], r.Experience[i+1:]...)
				return r, true
			}
		}
	case CollectionEducation:
		for i := range r.Education {
			if r.Education[i].ID == id {
				r.Education = append(r.Education[:i], r.Education[i+1:]...)
				return r, true
			}
		}
	case CollectionSkills:
		for i := range r.Skills {
			if r.Skills[i].ID == id {
				r.Skills = append(r.Skills[:i], r.Skills[i+1:]...)
				return r, true
			}
		}
	case CollectionProjects:
		for i := range r.Projects {
			if r.Projects[i].ID == id {
				r.Projects = append(r.Projects[:i], r.Projects[i+1:]...)
				return r, true
			}
		}
	case CollectionCertifications:
		for i := range r.Certifications {
			if r.Certifications[i].ID == id {
				r.Certifications = append(r.Certifications[:i], r.Certifications[i+1:]...)
				return r, true
			}
		}
	}
	return r, false
}
