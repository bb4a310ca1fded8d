package tailor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-editor/internal/fetch"
	"github.com/jonathan/resume-editor/internal/types"
)

// Service produces tailored revisions of a resume.
type Service struct {
	client Client
}

// NewService creates a tailoring service on top of an LLM client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// TailorResume returns a copy of the resume with the summary and the
// experience bullets rewritten against the job description. The summary
// and each experience entry are rewritten in parallel; any rewrite that
// fails keeps its original text, so the result is always usable.
func (s *Service) TailorResume(ctx context.Context, resume types.Resume, jobDescription string) (types.Resume, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return resume, ErrNoJobDescription
	}

	out := resume.Clone()

	g, gctx := errgroup.WithContext(ctx)

	if strings.TrimSpace(out.Summary) != "" {
		g.Go(func() error {
			rewritten, err := s.tailorSummary(gctx, out.Summary, jobDescription)
			if err != nil {
				log.Printf("Summary rewrite failed, keeping original: %v", err)
				return nil
			}
			out.Summary = rewritten
			return nil
		})
	}

	for i := range out.Experience {
		if len(out.Experience[i].Bullets) == 0 {
			continue
		}
		g.Go(func() error {
			entry := &out.Experience[i]
			rewritten, err := s.tailorBullets(gctx, *entry, jobDescription)
			if err != nil {
				log.Printf("Bullet rewrite failed for %s, keeping originals: %v", entry.ID, err)
				return nil
			}
			entry.Bullets = rewritten
			return nil
		})
	}

	// Goroutines never return errors; Wait is for completion only.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return resume, err
	}
	return out, nil
}

// tailorSummary rewrites the professional summary.
func (s *Service) tailorSummary(ctx context.Context, summary, jobDescription string) (string, error) {
	template, err := prompt("tailor_summary")
	if err != nil {
		return "", err
	}

	text, err := s.client.GenerateContent(ctx, formatPrompt(template, map[string]string{
		"JobDescription": jobDescription,
		"Summary":        summary,
	}), TierAdvanced)
	if err != nil {
		return "", &APICallError{Message: "summary rewrite failed", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty summary in response")
	}
	return text, nil
}

// tailorBullets rewrites one experience entry's bullets. The response
// must carry the same number of bullets or the originals are kept.
func (s *Service) tailorBullets(ctx context.Context, entry types.Experience, jobDescription string) ([]string, error) {
	template, err := prompt("tailor_bullets")
	if err != nil {
		return nil, err
	}

	originals, err := json.Marshal(entry.Bullets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bullets: %w", err)
	}

	response, err := s.client.GenerateJSON(ctx, formatPrompt(template, map[string]string{
		"JobDescription": jobDescription,
		"Role":           entry.Role,
		"Company":        entry.Company,
		"Bullets":        string(originals),
	}), TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "bullet rewrite failed", Cause: err}
	}

	var rewritten []string
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &rewritten); err != nil {
		return nil, fmt.Errorf("failed to parse bullet response: %w", err)
	}
	if len(rewritten) != len(entry.Bullets) {
		return nil, fmt.Errorf("bullet count mismatch: got %d, want %d", len(rewritten), len(entry.Bullets))
	}
	for i, b := range rewritten {
		rewritten[i] = strings.TrimSpace(b)
		if rewritten[i] == "" {
			// Blank rewrite, keep the original bullet.
			rewritten[i] = entry.Bullets[i]
		}
	}
	return rewritten, nil
}

// JobDescriptionFromURL fetches a job posting and returns its
// description text.
func (s *Service) JobDescriptionFromURL(ctx context.Context, url string, opts *fetch.Options) (string, error) {
	posting, err := fetch.JobPosting(ctx, url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	if strings.TrimSpace(posting.Text) == "" {
		return "", fmt.Errorf("no description text found at %s", url)
	}
	return posting.Text, nil
}

// parsedResume mirrors the Resume shape without identifiers; the model
// produces entries and the service assigns IDs.
type parsedResume struct {
	PersonalInfo   types.PersonalInfo    `json:"personal_info"`
	Summary        string                `json:"summary"`
	Experience     []types.Experience    `json:"experience"`
	Education      []types.Education     `json:"education"`
	Skills         []types.Skill         `json:"skills"`
	Projects       []types.Project       `json:"projects"`
	Certifications []types.Certification `json:"certifications"`
}

// ParseResume extracts a structured resume from free text, such as a
// pasted plain-text resume. Entry identifiers are assigned locally.
func (s *Service) ParseResume(ctx context.Context, text string) (*types.Resume, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	template, err := prompt("parse_resume")
	if err != nil {
		return nil, err
	}

	response, err := s.client.GenerateJSON(ctx, formatPrompt(template, map[string]string{
		"Text": text,
	}), TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume parsing failed", Cause: err}
	}

	var parsed parsedResume
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse resume response: %w", err)
	}

	resume := types.NewBlankResume(uuid.NewString())
	resume.PersonalInfo = parsed.PersonalInfo
	resume.Summary = parsed.Summary
	resume.Experience = parsed.Experience
	resume.Education = parsed.Education
	resume.Skills = parsed.Skills
	resume.Projects = parsed.Projects
	resume.Certifications = parsed.Certifications

	for i := range resume.Experience {
		resume.Experience[i].ID = uuid.NewString()
	}
	for i := range resume.Education {
		resume.Education[i].ID = uuid.NewString()
	}
	for i := range resume.Skills {
		resume.Skills[i].ID = uuid.NewString()
	}
	for i := range resume.Projects {
		resume.Projects[i].ID = uuid.NewString()
	}
	for i := range resume.Certifications {
		resume.Certifications[i].ID = uuid.NewString()
	}

	return &resume, nil
}
