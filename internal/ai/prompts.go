package ai

import "fmt"

// Default prompt templates. Each takes the source text (and for optimization,
// the serialized records) via fmt verbs. Config may override any of them with
// a prompt file; see config.ResolvePrompt.

const DefaultResumeExtractionPrompt = `You are a resume parsing assistant. Extract structured information from the resume text below.

Respond with a single JSON object and nothing else, using exactly this structure:
{
  "basic_info": {"name": "", "email": "", "phone": "", "address": "", "linkedin": "", "github": "", "website": "", "summary": ""},
  "experiences": [{"company": "", "title": "", "location": "", "start_date": "", "end_date": "", "description": "", "achievements": []}],
  "educations": [{"institution": "", "degree": "", "field_of_study": "", "location": "", "start_date": "", "end_date": "", "gpa": "", "description": ""}],
  "skills": [{"name": "", "category": "", "proficiency": ""}],
  "certifications": [{"name": "", "issuer": "", "date": "", "description": ""}],
  "projects": [{"name": "", "description": "", "technologies": "", "url": "", "start_date": "", "end_date": ""}],
  "publications": [{"title": "", "publisher": "", "date": "", "url": "", "description": ""}],
  "achievements": [{"title": "", "date": "", "description": ""}]
}

Use empty strings or empty arrays for anything the resume does not state. Do not invent information.

Resume text:
%s`

const DefaultJobAnalysisPrompt = `You are a job description analyst. Extract the key requirements from the job posting below.

Respond with a single JSON object and nothing else, using exactly this structure:
{
  "job_title": "",
  "company": "",
  "required_skills": [],
  "preferred_skills": [],
  "required_experience": "",
  "required_education": "",
  "job_responsibilities": [],
  "keywords": []
}

Use empty strings or empty arrays for anything the posting does not state.

Job posting:
%s`

const DefaultOptimizePrompt = `You are a professional resume writer. Rewrite the candidate's resume so it targets the job below.

Guidelines:
- Reorder experiences so the most relevant to the job come first.
- Reword achievement and description lines to use the job posting's own terminology where truthful.
- Keep only skills that are relevant to the job's required or preferred skills.
- Do not invent employers, dates, degrees, or accomplishments.
- Keep the overall length equivalent to a one-page resume.

Respond with a single JSON object in exactly the same structure as the candidate resume JSON. No commentary.

Candidate resume (JSON):
%s

Job requirements (JSON):
%s

Job posting text:
%s`

const DefaultChatPrompt = `You are a career assistant answering questions about the candidate's resume.

Candidate resume (JSON):
%s

Conversation so far:
%s

Answer the last user question directly and concisely, grounded only in the resume above. If the resume does not contain the answer, say so.`

// BuildPrompt renders a template against its arguments. Templates are plain
// fmt strings so prompt files can be swapped in without a template engine.
func BuildPrompt(template string, args ...any) string {
	return fmt.Sprintf(template, args...)
}
