package latex

import (
	"testing"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/profile"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
	"github.com/stretchr/testify/require"
)

func testProfile() profile.Profile {
	return profile.Profile{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+1 555 0100",
	}
}

func testContent() resume.Content {
	return resume.Content{
		ProfessionalSummary: "Data engineer with Python & SQL expertise",
		Experience: []resume.ExperienceItem{
			{
				Title:   "Data Engineer",
				Company: "Acme Corp",
				Dates:   "2021 - 2024",
				Bullets: []string{"Cut costs by 30% with Docker-based batch jobs"},
			},
		},
		Projects: []resume.ProjectItem{
			{Name: "Stream Processor", Bullets: []string{"Kafka pipeline handling 1M events/day"}},
		},
		Skills: []resume.SkillGroup{
			{Category: "Languages", Skills: []string{"Python", "SQL"}},
			{Category: "Tools", Skills: []string{"Docker", "Kafka"}},
		},
		Education: []resume.EducationItem{
			{Degree: "BSc Computer Science", Institution: "State University", Year: "2020"},
		},
	}
}

func TestRenderProducesValidStructure(t *testing.T) {
	rendered, err := Render(testContent(), testProfile())
	require.NoError(t, err)

	v := NewValidator(nil)
	report := v.Validate(rendered)
	require.True(t, report.IsValid, "syntax errors: %v", report.SyntaxErrors)
	require.GreaterOrEqual(t, report.SectionCount, 4)
	require.Greater(t, report.BulletCount, 0)
}

func TestRenderEscapesUserValues(t *testing.T) {
	content := testContent()
	content.ProfessionalSummary = "Raised revenue 40% via R&D on AWS_pipelines worth $2M {at scale}"
	rendered, err := Render(content, testProfile())
	require.NoError(t, err)

	require.Contains(t, rendered, `40\%`)
	require.Contains(t, rendered, `R\&D`)
	require.Contains(t, rendered, `AWS\_pipelines`)
	require.Contains(t, rendered, `\$2M`)
	require.Contains(t, rendered, `\{at scale\}`)

	result := Scan(rendered)
	require.Empty(t, result.EscapeViolations)
}

func TestRenderRoundTripKeepsTermsVisible(t *testing.T) {
	rendered, err := Render(testContent(), testProfile())
	require.NoError(t, err)

	result := Scan(rendered)
	for _, term := range []string{"Python", "SQL", "Docker", "Kafka"} {
		require.Contains(t, result.PlainText, term)
	}
	require.Contains(t, result.Sections[SectionSkills], "Docker")
	require.Contains(t, result.Sections[SectionExperience], "Docker")
	require.Contains(t, result.Sections[SectionProjects], "Kafka")
}

func TestRenderOmitsEmptyProjects(t *testing.T) {
	content := testContent()
	content.Projects = nil
	rendered, err := Render(content, testProfile())
	require.NoError(t, err)
	require.NotContains(t, rendered, `\section*{Projects}`)
}
