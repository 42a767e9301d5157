package profile

import (
	"testing"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/stretchr/testify/require"
)

const validYAML = `
name: Jane Doe
email: jane@example.com
phone: "+1 555 0100"
experience:
  - title: Data Engineer
    company: Acme
    dates: 2021 - 2024
    highlights:
      - Built streaming pipelines with Kafka
skills:
  languages: [Python, SQL]
  tools: [Docker]
education:
  - degree: BSc Computer Science
    institution: State University
    year: "2020"
`

func TestParseValidProfile(t *testing.T) {
	p, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", p.Name)
	require.Len(t, p.Experience, 1)
	require.Equal(t, []string{"Python", "SQL"}, p.Skills["languages"])
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	require.Error(t, err)
	require.True(t, errors.IsInput(err))
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"missing name", func(p *Profile) { p.Name = "" }},
		{"missing email", func(p *Profile) { p.Email = "" }},
		{"no experience or projects", func(p *Profile) { p.Experience = nil; p.Projects = nil }},
		{"no skills", func(p *Profile) { p.Skills = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(validYAML))
			require.NoError(t, err)
			tt.mutate(&p)
			err = p.Validate()
			require.Error(t, err)
			require.True(t, errors.IsInput(err))
		})
	}
}
