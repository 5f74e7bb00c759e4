package types

// BasicInfo holds the identity section of a resume. Every field is optional;
// extraction fills in whatever the source text provides and leaves the rest empty.
type BasicInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// Experience represents one employment entry
type Experience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Education represents one education entry
type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Location     string `json:"location"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	GPA          string `json:"gpa"`
	Description  string `json:"description"`
}

// Skill represents one skill entry
type Skill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

// Certification represents one certification entry
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Project represents one project entry
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// Publication represents one publication entry
type Publication struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Achievement represents one standalone achievement entry
type Achievement struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// ResumeRecord is the full structured form of a resume. Sections are ordered
// slices; any of them may be empty. A record with every field zero is still a
// valid record: absence of data is represented by empty values, never by a
// missing key, so downstream code can read any field without nil checks.
type ResumeRecord struct {
	BasicInfo      BasicInfo       `json:"basic_info"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Publications   []Publication   `json:"publications"`
	Achievements   []Achievement   `json:"achievements"`
}

// SkillNames returns the names of all skills in record order.
func (r ResumeRecord) SkillNames() []string {
	names := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		names = append(names, s.Name)
	}
	return names
}

// IsZero reports whether the record carries no data at all. Extraction uses
// this to distinguish "model returned nothing useful" from a populated record.
func (r ResumeRecord) IsZero() bool {
	return r.BasicInfo == BasicInfo{} &&
		len(r.Experiences) == 0 &&
		len(r.Educations) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Certifications) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Publications) == 0 &&
		len(r.Achievements) == 0
}

// JobRequirements is the structured form of a job description.
type JobRequirements struct {
	JobTitle            string   `json:"job_title"`
	Company             string   `json:"company"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills"`
	RequiredExperience  string   `json:"required_experience"`
	RequiredEducation   string   `json:"required_education"`
	JobResponsibilities []string `json:"job_responsibilities"`
	Keywords            []string `json:"keywords"`
}

// IsZero reports whether the requirements carry no data at all.
func (j JobRequirements) IsZero() bool {
	return j.JobTitle == "" &&
		j.Company == "" &&
		len(j.RequiredSkills) == 0 &&
		len(j.PreferredSkills) == 0 &&
		j.RequiredExperience == "" &&
		j.RequiredEducation == "" &&
		len(j.JobResponsibilities) == 0 &&
		len(j.Keywords) == 0
}

// MatchReport is derived from one ResumeRecord and one JobRequirements.
// It is recomputed on demand and never persisted.
type MatchReport struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
}

// ChatTurn is one message in a resume conversation
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
