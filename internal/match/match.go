// Package match computes skill overlap and gap reports between a parsed
// resume and a job's requirements. It is pure string logic; no backend calls.
package match

import (
	"strings"

	"resumeforge/internal/types"
)

// Skills compares resume skills against a job's required and preferred
// skills and reports which resume skills line up and which targets are
// unmet. Matching is case-insensitive substring containment, applied
// directionally:
//
//   - a resume skill matches when it CONTAINS any target skill
//     ("Python Programming" matches target "python"),
//   - a target is missing when NO resume skill contains it.
//
// Required and preferred targets are treated identically, in input order.
// Inputs are never mutated, duplicates are kept, and output order follows
// input order. Empty inputs produce empty (non-nil) report fields.
func Skills(resumeSkills, required, preferred []string) types.MatchReport {
	targets := make([]string, 0, len(required)+len(preferred))
	targets = append(targets, required...)
	targets = append(targets, preferred...)

	lowerTargets := make([]string, len(targets))
	for i, t := range targets {
		lowerTargets[i] = strings.ToLower(t)
	}

	matching := make([]string, 0, len(resumeSkills))
	for _, skill := range resumeSkills {
		lowerSkill := strings.ToLower(skill)
		for _, target := range lowerTargets {
			if strings.Contains(lowerSkill, target) {
				matching = append(matching, skill)
				break
			}
		}
	}

	missing := make([]string, 0, len(targets))
	for i, target := range targets {
		found := false
		for _, skill := range resumeSkills {
			if strings.Contains(strings.ToLower(skill), lowerTargets[i]) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, target)
		}
	}

	return types.MatchReport{
		MatchingSkills: matching,
		MissingSkills:  missing,
	}
}

// Resume is a convenience wrapper taking the typed records directly.
func Resume(resume types.ResumeRecord, job types.JobRequirements) types.MatchReport {
	return Skills(resume.SkillNames(), job.RequiredSkills, job.PreferredSkills)
}
