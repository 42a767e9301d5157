// Package standards evaluates the five fixed quality standards for one round
// and applies the hybrid-pass tie-break. Which standards are waivable is an
// explicit policy table, not scattered conditionals: numeric hard gates are
// never waived regardless of the hybrid budget.
package standards

import (
	"fmt"
	"strings"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/ats"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

// Decision is the per-round outcome of the standards evaluation.
type Decision string

const (
	DecisionPass     Decision = "PASS"
	DecisionContinue Decision = "CONTINUE"
)

// The five fixed standards. Names are part of the execution report schema
// and must stay stable for downstream parsers.
const (
	StandardATSScore   = "ats_score_met"
	StandardKeywords   = "keywords_complete"
	StandardLaTeXValid = "latex_valid"
	StandardPDFQuality = "pdf_quality_met"
	StandardNoBlocking = "no_blocking_issues"
)

// highImportance mirrors the compliance scorer's threshold: a missing term at
// or above it fails keywords_complete.
const highImportance = 0.8

// Checklist records each standard's pass/fail for one round.
type Checklist map[string]bool

// Evaluation is the outcome of evaluating one round's reports.
type Evaluation struct {
	Checklist Checklist `json:"checklist"`
	Decision  Decision  `json:"decision"`
	// Failed lists every standard that did not hold, in policy order.
	Failed []string `json:"failed,omitempty"`
	// Waived lists failed standards forgiven by the hybrid policy. Empty
	// unless Decision is PASS via hybrid.
	Waived []string `json:"waived,omitempty"`
	// Feedback is the synthesized criticism handed to the generator on
	// CONTINUE. Empty on PASS.
	Feedback string `json:"feedback,omitempty"`
}

// roundInputs bundles everything one evaluation reads.
type roundInputs struct {
	compliance ats.Report
	structure  latex.StructureReport
	ranked     []terms.RankedTerm
}

// policyEntry declares one standard: its check and whether the hybrid policy
// may waive it.
type policyEntry struct {
	name     string
	waivable bool
	check    func(cfg config.Config, in roundInputs) bool
}

// policyTable enumerates the five standards in stable order. keywords_complete
// waivability is resolved per config (RequireFullKeywords promotes it to a
// hard gate), handled in waivable().
var policyTable = []policyEntry{
	{
		name:     StandardATSScore,
		waivable: false,
		check: func(cfg config.Config, in roundInputs) bool {
			return in.compliance.OverallScore >= cfg.MinATSScore
		},
	},
	{
		name:     StandardKeywords,
		waivable: true,
		check: func(cfg config.Config, in roundInputs) bool {
			if cfg.RequireFullKeywords {
				return len(in.compliance.MissingTerms) == 0
			}
			importance := map[string]float64{}
			for _, term := range in.ranked {
				importance[term.Text] = term.Importance
			}
			for _, missing := range in.compliance.MissingTerms {
				if importance[missing] >= highImportance {
					return false
				}
			}
			return true
		},
	},
	{
		name:     StandardLaTeXValid,
		waivable: false,
		check: func(cfg config.Config, in roundInputs) bool {
			return in.structure.IsValid
		},
	},
	{
		name:     StandardPDFQuality,
		waivable: true,
		check: func(cfg config.Config, in roundInputs) bool {
			return in.structure.QualityScore >= cfg.PDFQualityThreshold
		},
	},
	{
		name:     StandardNoBlocking,
		waivable: true,
		check: func(cfg config.Config, in roundInputs) bool {
			return len(in.compliance.BlockingIssues) == 0
		},
	},
}

// Evaluator applies the policy table. Stateless; one instance serves every round.
type Evaluator struct {
	cfg    config.Config
	logger logging.Logger
}

// NewEvaluator builds an Evaluator bound to one immutable configuration.
func NewEvaluator(cfg config.Config, logger logging.Logger) *Evaluator {
	return &Evaluator{cfg: cfg, logger: logging.OrNop(logger)}
}

// waivable resolves an entry's effective waivability under the configuration.
func (e *Evaluator) waivable(entry policyEntry) bool {
	if entry.name == StandardKeywords && e.cfg.RequireFullKeywords {
		return false
	}
	return entry.waivable
}

// Evaluate runs every standard and decides PASS or CONTINUE. PASS requires
// all five to hold, or, when the hybrid policy is enabled, at most the
// configured number of failures with all of them waivable.
func (e *Evaluator) Evaluate(compliance ats.Report, structure latex.StructureReport, ranked []terms.RankedTerm) Evaluation {
	in := roundInputs{compliance: compliance, structure: structure, ranked: ranked}

	eval := Evaluation{Checklist: Checklist{}}
	allWaivable := true
	for _, entry := range policyTable {
		ok := entry.check(e.cfg, in)
		eval.Checklist[entry.name] = ok
		if !ok {
			eval.Failed = append(eval.Failed, entry.name)
			if !e.waivable(entry) {
				allWaivable = false
			}
		}
	}

	switch {
	case len(eval.Failed) == 0:
		eval.Decision = DecisionPass
	case e.cfg.EnableHybridPolicy && len(eval.Failed) <= e.cfg.HybridAllowedFailures && allWaivable:
		eval.Decision = DecisionPass
		eval.Waived = append([]string(nil), eval.Failed...)
		e.logger.Info("Hybrid pass: waived %s", strings.Join(eval.Waived, ", "))
	default:
		eval.Decision = DecisionContinue
		eval.Feedback = e.feedback(eval.Failed, in)
	}

	e.logger.Info("Standards: %d/%d met, decision=%s", len(policyTable)-len(eval.Failed), len(policyTable), eval.Decision)
	return eval
}

// feedback synthesizes the criticism consumed by the generator next round:
// every failed standard with its numbers, the missing terms, and the syntax
// errors.
func (e *Evaluator) feedback(failed []string, in roundInputs) string {
	var sb strings.Builder
	sb.WriteString("The resume did not meet these quality standards:\n")

	for _, name := range failed {
		switch name {
		case StandardATSScore:
			fmt.Fprintf(&sb, "- ATS compliance score %.1f is below the required %.1f. Work more job-description keywords into the skills, experience and projects sections.\n",
				in.compliance.OverallScore, e.cfg.MinATSScore)
		case StandardKeywords:
			fmt.Fprintf(&sb, "- Important keywords are missing: %s.\n", joinLimited(in.compliance.MissingTerms, 8))
		case StandardLaTeXValid:
			fmt.Fprintf(&sb, "- The LaTeX document has syntax errors: %s.\n", joinLimited(in.structure.SyntaxErrors, 5))
		case StandardPDFQuality:
			fmt.Fprintf(&sb, "- Structural quality %.0f/100 is below the required %.0f. Aim for 4-7 sections with bulleted, emphasized content.\n",
				in.structure.QualityScore, e.cfg.PDFQualityThreshold)
		case StandardNoBlocking:
			fmt.Fprintf(&sb, "- Blocking issues: %s.\n", joinLimited(in.compliance.BlockingIssues, 5))
		}
	}

	if len(in.compliance.MissingTerms) > 0 {
		fmt.Fprintf(&sb, "Missing terms to add where truthful: %s.\n", joinLimited(in.compliance.MissingTerms, 12))
	}
	return sb.String()
}

func joinLimited(items []string, limit int) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) <= limit {
		return strings.Join(items, "; ")
	}
	return fmt.Sprintf("%s; and %d more", strings.Join(items[:limit], "; "), len(items)-limit)
}
