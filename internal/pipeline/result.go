package pipeline

import (
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/ats"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/standards"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

// Final run statuses.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// IterationRecord is the audit entry for one round. Records are appended once
// per round and never edited. Field names are stable: downstream tooling
// parses the serialized form.
type IterationRecord struct {
	Index      int                   `json:"index"`
	Compliance ats.Report            `json:"compliance_report"`
	Structure  latex.StructureReport `json:"structure_report"`
	Checklist  standards.Checklist   `json:"standards_checklist"`
	Decision   standards.Decision    `json:"decision"`
	Feedback   string                `json:"feedback,omitempty"`
	// GenerationError is set when the round's generator call failed; the
	// round then carries worst-case reports and a retry feedback.
	GenerationError string `json:"generation_error,omitempty"`
	// ScoringError is set when a scoring task failed and worst-case reports
	// were substituted.
	ScoringError string `json:"scoring_error,omitempty"`
	// DraftDelta summarizes how much the draft text moved since the previous
	// round. Empty on round one.
	DraftDelta      string  `json:"draft_delta,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ExecutionResult is the terminal artifact of one full run. Immutable after
// Run returns.
type ExecutionResult struct {
	RunID           string             `json:"run_id"`
	FinalStatus     string             `json:"final_status"`
	TotalIterations int                `json:"total_iterations"`
	Iterations      []IterationRecord  `json:"iterations"`
	ElapsedSeconds  float64            `json:"elapsed_seconds"`
	Model           string             `json:"model"`
	RankedTerms     []terms.RankedTerm `json:"ranked_terms"`

	// FinalDraft is the last draft produced (the passing one on pass, the
	// latest attempt on fail). Serialized separately by the report writer.
	FinalDraft resume.Draft `json:"-"`
}
