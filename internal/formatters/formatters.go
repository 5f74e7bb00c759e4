package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeRecord", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeRecord", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobRequirements", &JobTextFormatter{})
	registry.RegisterFormatter("markdown", "JobRequirements", &JobMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchReport", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchReport", &MatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeRecord:
		return "ResumeRecord"
	case types.JobRequirements:
		return "JobRequirements"
	case types.MatchReport:
		return "MatchReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResumeTextFormatter handles text formatting for resume records
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ===\n\n")
	writeNonEmpty(&output, "Name: ", record.BasicInfo.Name)
	writeNonEmpty(&output, "Email: ", record.BasicInfo.Email)
	writeNonEmpty(&output, "Phone: ", record.BasicInfo.Phone)
	writeNonEmpty(&output, "Address: ", record.BasicInfo.Address)
	writeNonEmpty(&output, "LinkedIn: ", record.BasicInfo.LinkedIn)
	writeNonEmpty(&output, "GitHub: ", record.BasicInfo.GitHub)
	writeNonEmpty(&output, "Website: ", record.BasicInfo.Website)
	if record.BasicInfo.Summary != "" {
		output.WriteString("\nSummary:\n")
		output.WriteString(record.BasicInfo.Summary)
		output.WriteString("\n")
	}

	if len(record.Experiences) > 0 {
		output.WriteString("\n=== EXPERIENCE ===\n")
		for _, exp := range record.Experiences {
			output.WriteString(fmt.Sprintf("\n%s at %s (%s - %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate))
			writeNonEmpty(&output, "Location: ", exp.Location)
			writeNonEmpty(&output, "", exp.Description)
			for _, a := range exp.Achievements {
				output.WriteString(fmt.Sprintf("- %s\n", a))
			}
		}
	}

	if len(record.Educations) > 0 {
		output.WriteString("\n=== EDUCATION ===\n")
		for _, edu := range record.Educations {
			output.WriteString(fmt.Sprintf("\n%s, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
			writeNonEmpty(&output, "Field: ", edu.FieldOfStudy)
			writeNonEmpty(&output, "GPA: ", edu.GPA)
		}
	}

	if len(record.Skills) > 0 {
		output.WriteString("\n=== SKILLS ===\n")
		for _, skill := range record.Skills {
			line := skill.Name
			if skill.Category != "" {
				line += " (" + skill.Category + ")"
			}
			if skill.Proficiency != "" {
				line += " - " + skill.Proficiency
			}
			output.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}

	if len(record.Certifications) > 0 {
		output.WriteString("\n=== CERTIFICATIONS ===\n")
		for _, cert := range record.Certifications {
			output.WriteString(fmt.Sprintf("- %s (%s, %s)\n", cert.Name, cert.Issuer, cert.Date))
		}
	}

	if len(record.Projects) > 0 {
		output.WriteString("\n=== PROJECTS ===\n")
		for _, proj := range record.Projects {
			output.WriteString(fmt.Sprintf("\n%s\n", proj.Name))
			writeNonEmpty(&output, "", proj.Description)
			writeNonEmpty(&output, "Technologies: ", proj.Technologies)
			writeNonEmpty(&output, "URL: ", proj.URL)
		}
	}

	if len(record.Publications) > 0 {
		output.WriteString("\n=== PUBLICATIONS ===\n")
		for _, pub := range record.Publications {
			output.WriteString(fmt.Sprintf("- %s (%s, %s)\n", pub.Title, pub.Publisher, pub.Date))
		}
	}

	if len(record.Achievements) > 0 {
		output.WriteString("\n=== ACHIEVEMENTS ===\n")
		for _, ach := range record.Achievements {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", ach.Title, ach.Date))
		}
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeRecord"
}

// ResumeMarkdownFormatter handles markdown formatting for resume records
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	record, ok := data.(types.ResumeRecord)
	if !ok {
		return "", fmt.Errorf("expected ResumeRecord, got %T", data)
	}

	var output strings.Builder

	if record.BasicInfo.Name != "" {
		output.WriteString(fmt.Sprintf("# %s\n\n", record.BasicInfo.Name))
	} else {
		output.WriteString("# Resume\n\n")
	}

	contact := make([]string, 0, 4)
	for _, field := range []string{record.BasicInfo.Email, record.BasicInfo.Phone, record.BasicInfo.LinkedIn, record.BasicInfo.GitHub, record.BasicInfo.Website} {
		if field != "" {
			contact = append(contact, field)
		}
	}
	if len(contact) > 0 {
		output.WriteString(strings.Join(contact, " | "))
		output.WriteString("\n\n")
	}

	if record.BasicInfo.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(record.BasicInfo.Summary)
		output.WriteString("\n\n")
	}

	if len(record.Experiences) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range record.Experiences {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", exp.Title, exp.Company))
			output.WriteString(fmt.Sprintf("*%s - %s*\n\n", exp.StartDate, exp.EndDate))
			if exp.Description != "" {
				output.WriteString(exp.Description)
				output.WriteString("\n\n")
			}
			for _, a := range exp.Achievements {
				output.WriteString(fmt.Sprintf("- %s\n", a))
			}
			if len(exp.Achievements) > 0 {
				output.WriteString("\n")
			}
		}
	}

	if len(record.Educations) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range record.Educations {
			output.WriteString(fmt.Sprintf("- **%s**, %s (%s - %s)\n", edu.Degree, edu.Institution, edu.StartDate, edu.EndDate))
		}
		output.WriteString("\n")
	}

	if len(record.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		names := record.SkillNames()
		output.WriteString(strings.Join(names, ", "))
		output.WriteString("\n\n")
	}

	if len(record.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		for _, cert := range record.Certifications {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", cert.Name, cert.Issuer))
		}
		output.WriteString("\n")
	}

	if len(record.Projects) > 0 {
		output.WriteString("## Projects\n\n")
		for _, proj := range record.Projects {
			output.WriteString(fmt.Sprintf("### %s\n\n", proj.Name))
			if proj.Description != "" {
				output.WriteString(proj.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(record.Publications) > 0 {
		output.WriteString("## Publications\n\n")
		for _, pub := range record.Publications {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", pub.Title, pub.Publisher, pub.Date))
		}
		output.WriteString("\n")
	}

	if len(record.Achievements) > 0 {
		output.WriteString("## Achievements\n\n")
		for _, ach := range record.Achievements {
			output.WriteString(fmt.Sprintf("- %s (%s)\n", ach.Title, ach.Date))
		}
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeRecord"
}

// JobTextFormatter handles text formatting for job requirements
type JobTextFormatter struct{}

func (jtf *JobTextFormatter) Format(data any) (string, error) {
	job, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB REQUIREMENTS ===\n\n")
	writeNonEmpty(&output, "Title: ", job.JobTitle)
	writeNonEmpty(&output, "Company: ", job.Company)
	writeNonEmpty(&output, "Experience: ", job.RequiredExperience)
	writeNonEmpty(&output, "Education: ", job.RequiredEducation)

	writeList(&output, "\nRequired Skills:\n", job.RequiredSkills)
	writeList(&output, "\nPreferred Skills:\n", job.PreferredSkills)
	writeList(&output, "\nResponsibilities:\n", job.JobResponsibilities)
	writeList(&output, "\nKeywords:\n", job.Keywords)

	return output.String(), nil
}

func (jtf *JobTextFormatter) SupportedType() string {
	return "JobRequirements"
}

// JobMarkdownFormatter handles markdown formatting for job requirements
type JobMarkdownFormatter struct{}

func (jmf *JobMarkdownFormatter) Format(data any) (string, error) {
	job, ok := data.(types.JobRequirements)
	if !ok {
		return "", fmt.Errorf("expected JobRequirements, got %T", data)
	}

	var output strings.Builder

	title := job.JobTitle
	if title == "" {
		title = "Job Requirements"
	}
	output.WriteString(fmt.Sprintf("# %s\n\n", title))
	if job.Company != "" {
		output.WriteString(fmt.Sprintf("**Company:** %s\n\n", job.Company))
	}
	if job.RequiredExperience != "" {
		output.WriteString(fmt.Sprintf("**Experience:** %s\n\n", job.RequiredExperience))
	}
	if job.RequiredEducation != "" {
		output.WriteString(fmt.Sprintf("**Education:** %s\n\n", job.RequiredEducation))
	}

	writeMarkdownList(&output, "## Required Skills\n\n", job.RequiredSkills)
	writeMarkdownList(&output, "## Preferred Skills\n\n", job.PreferredSkills)
	writeMarkdownList(&output, "## Responsibilities\n\n", job.JobResponsibilities)
	writeMarkdownList(&output, "## Keywords\n\n", job.Keywords)

	return output.String(), nil
}

func (jmf *JobMarkdownFormatter) SupportedType() string {
	return "JobRequirements"
}

// MatchTextFormatter handles text formatting for match reports
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	report, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL MATCH REPORT ===\n")
	if len(report.MatchingSkills) > 0 {
		writeList(&output, "\nMatching Skills:\n", report.MatchingSkills)
	} else {
		output.WriteString("\nNo matching skills found.\n")
	}
	if len(report.MissingSkills) > 0 {
		writeList(&output, "\nMissing Skills:\n", report.MissingSkills)
	} else {
		output.WriteString("\nNo skill gaps found.\n")
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchReport"
}

// MatchMarkdownFormatter handles markdown formatting for match reports
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	report, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Skill Match Report\n\n")
	if len(report.MatchingSkills) > 0 {
		writeMarkdownList(&output, "## Matching Skills\n\n", report.MatchingSkills)
	} else {
		output.WriteString("## Matching Skills\n\nNone found.\n\n")
	}
	if len(report.MissingSkills) > 0 {
		writeMarkdownList(&output, "## Missing Skills\n\n", report.MissingSkills)
	} else {
		output.WriteString("## Missing Skills\n\nNone found.\n\n")
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchReport"
}

func writeNonEmpty(b *strings.Builder, label, value string) {
	if value != "" {
		b.WriteString(label)
		b.WriteString(value)
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
}

func writeMarkdownList(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s\n", item))
	}
	b.WriteString("\n")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
