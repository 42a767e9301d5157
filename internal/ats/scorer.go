// Package ats computes the compliance score of a rendered resume against the
// ranked terms of a job description: a section-weighted coverage metric plus
// blocking issues severe enough to force another round regardless of score.
package ats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

// highImportance marks terms whose absence can raise a blocking issue.
const highImportance = 0.8

// coverageTarget saturates per-section coverage: a section counts as fully
// covered once this fraction of the ranked terms appears in it. Terms are
// spread across sections, so no single section is expected to repeat all of
// them.
const coverageTarget = 0.75

// Report is the compliance outcome of one round. PresentTerms and
// MissingTerms always partition the full ranked-term set.
type Report struct {
	OverallScore   float64            `json:"overall_score"` // within [0,100]
	SectionScores  map[string]float64 `json:"section_scores"`
	PresentTerms   []string           `json:"present_terms"`
	MissingTerms   []string           `json:"missing_terms"`
	BlockingIssues []string           `json:"blocking_issues"`
}

// Scorer computes compliance reports. Stateless and pure: the same draft and
// term ranking always produce the same report.
type Scorer struct {
	weights             config.Weights
	highImportanceFloor float64
	logger              logging.Logger
}

// NewScorer builds a Scorer from the configured section weights and the
// minimum coverage ratio of high-importance terms.
func NewScorer(weights config.Weights, highImportanceFloor float64, logger logging.Logger) *Scorer {
	return &Scorer{
		weights:             weights,
		highImportanceFloor: highImportanceFloor,
		logger:              logging.OrNop(logger),
	}
}

// requiredSections are the sections whose absence is a blocking issue, with
// the weight each contributes to the overall score.
func (s *Scorer) requiredSections() []struct {
	name   string
	weight float64
} {
	return []struct {
		name   string
		weight float64
	}{
		{latex.SectionSkills, s.weights.Skills},
		{latex.SectionExperience, s.weights.Experience},
		{latex.SectionProjects, s.weights.Projects},
	}
}

// Score matches every ranked term against each scored section's text and
// aggregates the weighted per-section coverage into the overall score.
func (s *Scorer) Score(scan latex.ScanResult, ranked []terms.RankedTerm) Report {
	report := Report{SectionScores: map[string]float64{}}

	sectionTexts := map[string]string{}
	for _, section := range s.requiredSections() {
		sectionTexts[section.name] = strings.ToLower(scan.Sections[section.name])
	}

	present := map[string]bool{}
	presentBySection := map[string]int{}
	for _, term := range ranked {
		for name, text := range sectionTexts {
			if matchTerm(text, term.Text) {
				presentBySection[name]++
				present[term.Text] = true
			}
		}
	}

	for _, term := range ranked {
		if present[term.Text] {
			report.PresentTerms = append(report.PresentTerms, term.Text)
		} else {
			report.MissingTerms = append(report.MissingTerms, term.Text)
		}
	}

	total := len(ranked)
	overall := 0.0
	for _, section := range s.requiredSections() {
		coverage := 0.0
		if total > 0 {
			coverage = float64(presentBySection[section.name]) / float64(total)
		}
		ratio := coverage / coverageTarget
		if ratio > 1 {
			ratio = 1
		}
		score := clampScore(ratio * 100)
		report.SectionScores[section.name] = score
		overall += section.weight * score
	}
	report.OverallScore = clampScore(overall)

	report.BlockingIssues = s.blockingIssues(scan, ranked, present)

	s.logger.Info("Compliance: score=%.1f present=%d missing=%d blocking=%d",
		report.OverallScore, len(report.PresentTerms), len(report.MissingTerms), len(report.BlockingIssues))
	return report
}

// blockingIssues reports required sections missing from the document and
// high-importance term coverage below the configured floor.
func (s *Scorer) blockingIssues(scan latex.ScanResult, ranked []terms.RankedTerm, present map[string]bool) []string {
	var issues []string

	var missingSections []string
	for _, section := range s.requiredSections() {
		if strings.TrimSpace(scan.Sections[section.name]) == "" {
			missingSections = append(missingSections, section.name)
		}
	}
	sort.Strings(missingSections)
	for _, name := range missingSections {
		issues = append(issues, fmt.Sprintf("required section %q is missing from the document", name))
	}

	highTotal, highPresent := 0, 0
	for _, term := range ranked {
		if term.Importance < highImportance {
			continue
		}
		highTotal++
		if present[term.Text] {
			highPresent++
		}
	}
	if highTotal > 0 {
		coverage := float64(highPresent) / float64(highTotal)
		if coverage < s.highImportanceFloor {
			issues = append(issues, fmt.Sprintf(
				"high-importance term coverage %.0f%% is below the %.0f%% floor (%d of %d present)",
				coverage*100, s.highImportanceFloor*100, highPresent, highTotal))
		}
	}
	return issues
}

// matchTerm reports whether term occurs in text as a whole word or as a stem
// (plural/verb suffixes on the last word allowed).
func matchTerm(text, term string) bool {
	if text == "" || term == "" {
		return false
	}
	if containsWord(text, term) {
		return true
	}
	for _, suffix := range []string{"s", "es", "ed", "ing"} {
		if containsWord(text, term+suffix) {
			return true
		}
	}
	// Candidate text may hold the plural while the job description has the
	// singular stem and vice versa.
	trimmed := strings.TrimSuffix(term, "s")
	if trimmed != term && len(trimmed) >= 3 && containsWord(text, trimmed) {
		return true
	}
	return false
}

// containsWord is a case-blind whole-word containment check; term boundaries
// are non-alphanumeric bytes.
func containsWord(text, term string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		abs := start + idx
		end := abs + len(term)
		leftOK := abs == 0 || !isAlnum(text[abs-1])
		rightOK := end == len(text) || !isAlnum(text[end])
		if leftOK && rightOK {
			return true
		}
		start = abs + 1
	}
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
