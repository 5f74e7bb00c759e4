package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func sampleResume() types.ResumeRecord {
	return types.ResumeRecord{
		BasicInfo: types.BasicInfo{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Summary: "Engineer and analyst.",
		},
		Experiences: []types.Experience{
			{Company: "Analytical Engines Ltd", Title: "Engineer", StartDate: "1842", EndDate: "1843",
				Achievements: []string{"Published the first program"}},
		},
		Skills: []types.Skill{{Name: "Mathematics"}, {Name: "Programming", Category: "Technical"}},
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleResume(), "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded types.ResumeRecord
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.BasicInfo.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", decoded.BasicInfo.Name)
	}
}

func TestResumeTextFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleResume(), "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "Analytical Engines Ltd", "Published the first program", "Mathematics"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestResumeMarkdownFormatter(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleResume(), "markdown")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.HasPrefix(out, "# Ada Lovelace") {
		t.Errorf("markdown output does not open with the name heading:\n%s", out)
	}
	if !strings.Contains(out, "## Experience") || !strings.Contains(out, "## Skills") {
		t.Errorf("markdown output missing section headings:\n%s", out)
	}
}

func TestJobFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	job := types.JobRequirements{
		JobTitle:       "Backend Engineer",
		Company:        "Example Corp",
		RequiredSkills: []string{"Go", "SQL"},
	}

	text, err := registry.Format(job, "text")
	if err != nil {
		t.Fatalf("Format(text) error = %v", err)
	}
	if !strings.Contains(text, "Backend Engineer") || !strings.Contains(text, "- Go") {
		t.Errorf("text output missing fields:\n%s", text)
	}

	md, err := registry.Format(job, "markdown")
	if err != nil {
		t.Fatalf("Format(markdown) error = %v", err)
	}
	if !strings.Contains(md, "# Backend Engineer") || !strings.Contains(md, "## Required Skills") {
		t.Errorf("markdown output missing headings:\n%s", md)
	}
}

func TestMatchFormatters(t *testing.T) {
	registry := NewFormatterRegistry()
	report := types.MatchReport{
		MatchingSkills: []string{"Go"},
		MissingSkills:  []string{"Kubernetes"},
	}

	text, err := registry.Format(report, "text")
	if err != nil {
		t.Fatalf("Format(text) error = %v", err)
	}
	if !strings.Contains(text, "Matching Skills") || !strings.Contains(text, "- Kubernetes") {
		t.Errorf("text output missing fields:\n%s", text)
	}

	empty, err := registry.Format(types.MatchReport{}, "text")
	if err != nil {
		t.Fatalf("Format(empty) error = %v", err)
	}
	if !strings.Contains(empty, "No matching skills found") {
		t.Errorf("empty report output:\n%s", empty)
	}
}

func TestUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleResume(), "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGenericFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	// Types without a dedicated text formatter still render as JSON via "json".
	out, err := registry.Format(map[string]string{"k": "v"}, "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, "\"k\": \"v\"") {
		t.Errorf("json fallback output:\n%s", out)
	}
}
