package match

import (
	"reflect"
	"testing"

	"resumeforge/internal/types"
)

func TestSkills(t *testing.T) {
	tests := []struct {
		name         string
		resumeSkills []string
		required     []string
		preferred    []string
		wantMatching []string
		wantMissing  []string
	}{
		{
			name:         "substring match is directional",
			resumeSkills: []string{"Python Programming", "SQL"},
			required:     []string{"python"},
			preferred:    []string{},
			wantMatching: []string{"Python Programming"},
			wantMissing:  []string{},
		},
		{
			name:         "no overlap reports all targets missing",
			resumeSkills: []string{"Java"},
			required:     []string{"Python", "Go"},
			preferred:    []string{"SQL"},
			wantMatching: []string{},
			wantMissing:  []string{"Python", "Go", "SQL"},
		},
		{
			name:         "empty inputs",
			resumeSkills: []string{},
			required:     []string{},
			preferred:    []string{},
			wantMatching: []string{},
			wantMissing:  []string{},
		},
		{
			name:         "case insensitive both directions",
			resumeSkills: []string{"GOLANG", "postgresql"},
			required:     []string{"golang", "PostgreSQL"},
			preferred:    []string{},
			wantMatching: []string{"GOLANG", "postgresql"},
			wantMissing:  []string{},
		},
		{
			name:         "duplicate targets are preserved",
			resumeSkills: []string{"Java"},
			required:     []string{"Go", "Go"},
			preferred:    []string{},
			wantMatching: []string{},
			wantMissing:  []string{"Go", "Go"},
		},
		{
			name:         "required and preferred treated identically",
			resumeSkills: []string{"Kubernetes Administration"},
			required:     []string{},
			preferred:    []string{"kubernetes"},
			wantMatching: []string{"Kubernetes Administration"},
			wantMissing:  []string{},
		},
		{
			name:         "one resume skill can satisfy multiple targets",
			resumeSkills: []string{"Python and Django development"},
			required:     []string{"Python", "Django"},
			preferred:    []string{},
			wantMatching: []string{"Python and Django development"},
			wantMissing:  []string{},
		},
		{
			name:         "target containing resume skill does not match",
			resumeSkills: []string{"SQL"},
			required:     []string{"PostgreSQL administration"},
			preferred:    []string{},
			wantMatching: []string{},
			wantMissing:  []string{"PostgreSQL administration"},
		},
		{
			name:         "output order follows input order",
			resumeSkills: []string{"Zig", "Ada", "Go"},
			required:     []string{"go", "ada"},
			preferred:    []string{},
			wantMatching: []string{"Ada", "Go"},
			wantMissing:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Skills(tt.resumeSkills, tt.required, tt.preferred)
			if !reflect.DeepEqual(got.MatchingSkills, tt.wantMatching) {
				t.Errorf("MatchingSkills = %v, want %v", got.MatchingSkills, tt.wantMatching)
			}
			if !reflect.DeepEqual(got.MissingSkills, tt.wantMissing) {
				t.Errorf("MissingSkills = %v, want %v", got.MissingSkills, tt.wantMissing)
			}
		})
	}
}

func TestSkillsDoesNotMutateInputs(t *testing.T) {
	resumeSkills := []string{"Go", "SQL"}
	required := []string{"go"}
	preferred := []string{"rust"}

	Skills(resumeSkills, required, preferred)

	if !reflect.DeepEqual(resumeSkills, []string{"Go", "SQL"}) {
		t.Errorf("resumeSkills mutated: %v", resumeSkills)
	}
	if !reflect.DeepEqual(required, []string{"go"}) || !reflect.DeepEqual(preferred, []string{"rust"}) {
		t.Errorf("target slices mutated: %v %v", required, preferred)
	}
}

func TestResume(t *testing.T) {
	resume := types.ResumeRecord{
		Skills: []types.Skill{{Name: "Go Development"}, {Name: "Terraform"}},
	}
	job := types.JobRequirements{
		RequiredSkills:  []string{"go"},
		PreferredSkills: []string{"AWS"},
	}

	got := Resume(resume, job)
	if !reflect.DeepEqual(got.MatchingSkills, []string{"Go Development"}) {
		t.Errorf("MatchingSkills = %v", got.MatchingSkills)
	}
	if !reflect.DeepEqual(got.MissingSkills, []string{"AWS"}) {
		t.Errorf("MissingSkills = %v", got.MissingSkills)
	}
}
