package tailor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-editor/internal/types"
)

// fakeClient scripts responses per prompt substring.
type fakeClient struct {
	content     func(prompt string) (string, error)
	jsonContent func(prompt string) (string, error)
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	if f.content == nil {
		return "", errors.New("not scripted")
	}
	return f.content(prompt)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	if f.jsonContent == nil {
		return "", errors.New("not scripted")
	}
	return f.jsonContent(prompt)
}

func (f *fakeClient) Close() error { return nil }

func sampleResume() types.Resume {
	r := types.NewBlankResume("doc-1")
	r.Summary = "Engineer with ten years of experience."
	r.Experience = []types.Experience{
		{
			ID:      "exp-1",
			Company: "Acme",
			Role:    "Engineer",
			Bullets: []string{"Built the widget service", "Cut costs by 20%"},
		},
	}
	return r
}

func TestTailorResume_RewritesSummaryAndBullets(t *testing.T) {
	client := &fakeClient{
		content: func(string) (string, error) {
			return "Backend engineer focused on distributed systems.", nil
		},
		jsonContent: func(string) (string, error) {
			return `["Designed the widget platform", "Reduced infrastructure spend 20%"]`, nil
		},
	}
	svc := NewService(client)

	out, err := svc.TailorResume(context.Background(), sampleResume(), "We need a backend engineer")
	if err != nil {
		t.Fatalf("TailorResume failed: %v", err)
	}
	if out.Summary != "Backend engineer focused on distributed systems." {
		t.Errorf("summary not rewritten: %q", out.Summary)
	}
	if out.Experience[0].Bullets[0] != "Designed the widget platform" {
		t.Errorf("bullets not rewritten: %v", out.Experience[0].Bullets)
	}
}

func TestTailorResume_DoesNotMutateInput(t *testing.T) {
	client := &fakeClient{
		content:     func(string) (string, error) { return "New summary.", nil },
		jsonContent: func(string) (string, error) { return `["a", "b"]`, nil },
	}
	in := sampleResume()

	_, err := NewService(client).TailorResume(context.Background(), in, "job")
	if err != nil {
		t.Fatalf("TailorResume failed: %v", err)
	}
	if in.Summary != "Engineer with ten years of experience." {
		t.Errorf("input summary mutated: %q", in.Summary)
	}
	if in.Experience[0].Bullets[0] != "Built the widget service" {
		t.Errorf("input bullets mutated: %v", in.Experience[0].Bullets)
	}
}

func TestTailorResume_FallsBackOnError(t *testing.T) {
	client := &fakeClient{
		content:     func(string) (string, error) { return "", errors.New("quota exceeded") },
		jsonContent: func(string) (string, error) { return "", errors.New("quota exceeded") },
	}

	out, err := NewService(client).TailorResume(context.Background(), sampleResume(), "job")
	if err != nil {
		t.Fatalf("TailorResume should not fail on rewrite errors: %v", err)
	}
	if out.Summary != "Engineer with ten years of experience." {
		t.Errorf("summary should keep original on error: %q", out.Summary)
	}
	if out.Experience[0].Bullets[0] != "Built the widget service" {
		t.Errorf("bullets should keep originals on error: %v", out.Experience[0].Bullets)
	}
}

func TestTailorResume_BulletCountMismatchKeepsOriginals(t *testing.T) {
	client := &fakeClient{
		content:     func(string) (string, error) { return "New summary.", nil },
		jsonContent: func(string) (string, error) { return `["only one"]`, nil },
	}

	out, err := NewService(client).TailorResume(context.Background(), sampleResume(), "job")
	if err != nil {
		t.Fatalf("TailorResume failed: %v", err)
	}
	if len(out.Experience[0].Bullets) != 2 || out.Experience[0].Bullets[0] != "Built the widget service" {
		t.Errorf("count mismatch should keep originals: %v", out.Experience[0].Bullets)
	}
}

func TestTailorResume_EmptyJobDescription(t *testing.T) {
	_, err := NewService(&fakeClient{}).TailorResume(context.Background(), sampleResume(), "   ")
	if !errors.Is(err, ErrNoJobDescription) {
		t.Fatalf("expected ErrNoJobDescription, got %v", err)
	}
}

func TestParseResume_AssignsIdentifiers(t *testing.T) {
	client := &fakeClient{
		jsonContent: func(prompt string) (string, error) {
			if !strings.Contains(prompt, "Jane Doe") {
				t.Errorf("prompt missing resume text")
			}
			return `{
				"personal_info": {"full_name": "Jane Doe", "email": "jane@example.com"},
				"summary": "Engineer.",
				"experience": [{"company": "Acme", "role": "Engineer", "bullets": ["Did things"]}],
				"skills": [{"name": "Go"}]
			}`, nil
		},
	}

	resume, err := NewService(client).ParseResume(context.Background(), "Jane Doe\njane@example.com\nEngineer at Acme")
	if err != nil {
		t.Fatalf("ParseResume failed: %v", err)
	}
	if resume.ID == "" {
		t.Error("resume ID not assigned")
	}
	if resume.PersonalInfo.FullName != "Jane Doe" {
		t.Errorf("personal info not extracted: %+v", resume.PersonalInfo)
	}
	if len(resume.Experience) != 1 || resume.Experience[0].ID == "" {
		t.Errorf("experience ID not assigned: %+v", resume.Experience)
	}
	if len(resume.Skills) != 1 || resume.Skills[0].ID == "" {
		t.Errorf("skill ID not assigned: %+v", resume.Skills)
	}
	if len(resume.Sections) == 0 {
		t.Error("default sections missing")
	}
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n[1, 2]\n```", `[1, 2]`},
		{"whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONBlock(tt.in); got != tt.want {
				t.Errorf("CleanJSONBlock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
