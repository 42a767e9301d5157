package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// keywordsLinePrefix is the marker the generator embeds in every prompt. The
// mock reads the keyword list back from it so offline drafts still cover the
// ranked terms.
const keywordsLinePrefix = "Target keywords:"

// MockClient produces deterministic resume drafts without any network access.
// It is the default provider: offline runs stay fast, bounded and repeatable.
type MockClient struct {
	model string
}

// NewMockClient builds a mock that reports the given model name.
func NewMockClient(model string) *MockClient {
	if model == "" {
		model = "mock"
	}
	return &MockClient{model: model}
}

func (m *MockClient) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	keywords := extractKeywords(req.User)
	payload, err := json.MarshalIndent(mockContent(keywords), "", "  ")
	if err != nil {
		return Response{}, fmt.Errorf("mock draft: %w", err)
	}
	return Response{Content: string(payload), Model: m.model}, nil
}

func (m *MockClient) Model() string { return m.model }

// extractKeywords pulls the comma-separated list off the keywords marker line.
func extractKeywords(prompt string) []string {
	for _, line := range strings.Split(prompt, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), keywordsLinePrefix)
		if !ok {
			continue
		}
		var keywords []string
		for _, part := range strings.Split(rest, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keywords = append(keywords, part)
			}
		}
		return keywords
	}
	return nil
}

// mockContent synthesizes a draft that mentions every keyword in the skills,
// experience and projects sections, mirroring what a cooperative model would
// return for the generation prompt.
func mockContent(keywords []string) map[string]any {
	if len(keywords) == 0 {
		keywords = []string{"software engineering"}
	}

	lead := keywords
	if len(lead) > 4 {
		lead = lead[:4]
	}
	summary := fmt.Sprintf("Results-driven engineer with hands-on experience in %s, delivering measurable business impact.",
		humanJoin(lead))

	expBullets := []string{
		fmt.Sprintf("Designed and shipped production systems using %s, improving delivery speed by 30%%.", humanJoin(keywords)),
		fmt.Sprintf("Led cross-team initiatives around %s, mentoring junior engineers.", humanJoin(firstN(keywords, 3))),
		"Drove code quality through reviews, testing and continuous integration.",
	}
	projBullets := []string{
		fmt.Sprintf("Built an end-to-end workflow exercising %s.", humanJoin(keywords)),
		"Documented architecture decisions and onboarding guides.",
	}

	return map[string]any{
		"professional_summary": summary,
		"experience": []map[string]any{
			{
				"title":   "Senior Software Engineer",
				"company": "Acme Systems",
				"dates":   "2021 - Present",
				"bullets": expBullets,
			},
			{
				"title":   "Software Engineer",
				"company": "Initech",
				"dates":   "2018 - 2021",
				"bullets": []string{
					fmt.Sprintf("Developed internal tooling with %s.", humanJoin(firstN(keywords, 3))),
					"Automated recurring operations work, saving 10 hours per week.",
				},
			},
		},
		"projects": []map[string]any{
			{
				"name":    "Workflow Automation Platform",
				"bullets": projBullets,
			},
		},
		"skills": []map[string]any{
			{
				"category": "Core Skills",
				"skills":   keywords,
			},
		},
		"education": []map[string]any{
			{
				"degree":      "B.S. Computer Science",
				"institution": "State University",
				"year":        "2018",
			},
		},
	}
}

func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
