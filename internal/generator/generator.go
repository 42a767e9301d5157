// Package generator turns a candidate profile and ranked job-description
// terms into a resume draft: it prompts the model for structured content,
// repairs and validates the returned JSON, then renders the LaTeX document.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/llm"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/profile"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

const systemPrompt = `You are an expert resume writer specializing in ATS-friendly resumes.
You respond with a single JSON object and nothing else. The object has the keys
professional_summary (string), experience (array of {title, company, dates, bullets}),
projects (array of {name, bullets}), skills (array of {category, skills}) and
education (array of {degree, institution, year}).
Never invent employers, dates or degrees that are not in the candidate profile.`

// Input is everything one draft request needs.
type Input struct {
	Profile        profile.Profile
	JobDescription string
	Ranked         []terms.RankedTerm
	// Feedback carries the previous round's criticism; empty on round one.
	Feedback string
	// Previous is the prior round's content, included on revision rounds so
	// the model edits rather than starts over.
	Previous *resume.Content
}

// Generator drives the model and assembles the draft.
type Generator struct {
	client llm.Client
	cfg    config.LLMConfig
	logger logging.Logger
}

func New(client llm.Client, cfg config.LLMConfig, logger logging.Logger) *Generator {
	return &Generator{client: client, cfg: cfg, logger: logging.OrNop(logger)}
}

// Model reports the underlying client's model name.
func (g *Generator) Model() string { return g.client.Model() }

// Generate produces one draft: model completion, JSON recovery, content
// validation, LaTeX render, plain-text scan. Failures wrap into a
// GenerationError carrying the round number.
func (g *Generator) Generate(ctx context.Context, round int, in Input) (resume.Draft, error) {
	req := llm.Request{
		System:      systemPrompt,
		User:        g.buildPrompt(in),
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	}

	resp, err := g.client.Complete(ctx, req)
	if err != nil {
		return resume.Draft{}, &errors.GenerationError{Err: err, Round: round, TimedOut: ctx.Err() == context.DeadlineExceeded}
	}
	g.logger.Debug("Round %d: model %s returned %d bytes", round, resp.Model, len(resp.Content))

	content, err := parseContent(resp.Content)
	if err != nil {
		return resume.Draft{}, &errors.GenerationError{Err: err, Round: round}
	}

	markup, err := latex.Render(content, in.Profile)
	if err != nil {
		return resume.Draft{}, &errors.GenerationError{Err: fmt.Errorf("render: %w", err), Round: round}
	}

	scan := latex.Scan(markup)
	return resume.Draft{Content: content, LaTeX: markup, PlainText: scan.PlainText}, nil
}

// buildPrompt assembles the user message. The job description is truncated to
// the configured token budget; the keyword list rides a fixed marker line so
// both the model and the offline mock can find it.
func (g *Generator) buildPrompt(in Input) string {
	var sb strings.Builder

	sb.WriteString("Write resume content for the candidate below, tailored to the job description.\n\n")

	sb.WriteString("## Candidate profile\n")
	if encoded, err := json.MarshalIndent(in.Profile, "", "  "); err == nil {
		sb.Write(encoded)
	}
	sb.WriteString("\n\n## Job description\n")
	sb.WriteString(llm.TruncateToTokens(in.JobDescription, g.cfg.PromptTokenBudget))
	sb.WriteString("\n\n")

	keywords := make([]string, 0, len(in.Ranked))
	for _, term := range in.Ranked {
		keywords = append(keywords, term.Text)
	}
	fmt.Fprintf(&sb, "Target keywords: %s\n", strings.Join(keywords, ", "))
	sb.WriteString("Work every target keyword into the summary, skills, experience or projects where it is truthful.\n")

	if in.Feedback != "" {
		sb.WriteString("\n## Revision feedback\n")
		sb.WriteString("The previous draft was rejected. Address every point below:\n")
		sb.WriteString(in.Feedback)
		if in.Previous != nil {
			if encoded, err := json.MarshalIndent(in.Previous, "", "  "); err == nil {
				sb.WriteString("\n## Previous draft content\n")
				sb.Write(encoded)
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\nRespond with the JSON object only.")
	return sb.String()
}

// parseContent extracts the JSON object from the model output, repairing it
// when the model wrapped it in prose or code fences or left it slightly
// malformed, then validates the required fields.
func parseContent(raw string) (resume.Content, error) {
	var content resume.Content

	candidate := extractJSONObject(raw)
	if candidate == "" {
		return content, fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(candidate), &content); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(candidate)
		if repairErr != nil {
			return content, fmt.Errorf("parse model output: %w (repair also failed: %v)", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &content); err != nil {
			return content, fmt.Errorf("parse repaired model output: %w", err)
		}
	}

	return content, validateContent(content)
}

// extractJSONObject strips code fences and surrounding prose, returning the
// outermost {...} span.
func extractJSONObject(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(cleaned, "```json"); ok {
		cleaned = after
	} else if after, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = after
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return ""
	}
	return cleaned[start : end+1]
}

// validateContent enforces the minimum shape a scoreable resume needs.
func validateContent(c resume.Content) error {
	if strings.TrimSpace(c.ProfessionalSummary) == "" {
		return fmt.Errorf("model output missing professional_summary")
	}
	if len(c.Skills) == 0 {
		return fmt.Errorf("model output missing skills")
	}
	if len(c.Experience) == 0 && len(c.Projects) == 0 {
		return fmt.Errorf("model output has neither experience nor projects")
	}
	for i, group := range c.Skills {
		if len(group.Skills) == 0 {
			return fmt.Errorf("skills group %d (%q) is empty", i, group.Category)
		}
	}
	return nil
}
