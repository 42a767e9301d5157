// Package resume holds the structured resume content model shared by the
// generator, the LaTeX renderer, and the pipeline.
package resume

// ExperienceItem is one role in the work history.
type ExperienceItem struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Dates   string   `json:"dates"`
	Bullets []string `json:"bullets"`
}

// ProjectItem is one highlighted project.
type ProjectItem struct {
	Name    string   `json:"name"`
	Bullets []string `json:"bullets"`
}

// EducationItem is one education entry.
type EducationItem struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// SkillGroup is a named group of skills ("Languages", "Cloud", ...).
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Content is the structured resume produced by the content generator for one
// round. Immutable once scored.
type Content struct {
	ProfessionalSummary string          `json:"professional_summary"`
	Experience          []ExperienceItem `json:"experience"`
	Projects            []ProjectItem    `json:"projects"`
	Skills              []SkillGroup     `json:"skills"`
	Education           []EducationItem  `json:"education"`
}

// Draft pairs the structured content of one round with its rendered LaTeX
// and extracted plain text.
type Draft struct {
	Content   Content `json:"content"`
	LaTeX     string  `json:"latex"`
	PlainText string  `json:"plain_text"`
}
