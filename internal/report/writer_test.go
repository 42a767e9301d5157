package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/ats"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/pipeline"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/standards"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

func sampleResult() pipeline.ExecutionResult {
	return pipeline.ExecutionResult{
		RunID:           "0b7e49a2-9f13-4a4e-b8c1-2f6d3f0dd001",
		FinalStatus:     pipeline.StatusPass,
		TotalIterations: 2,
		ElapsedSeconds:  4.2,
		Model:           "gpt-4o-mini",
		RankedTerms: []terms.RankedTerm{
			{Text: "python", Category: terms.CategorySkill, Importance: 1.0},
			{Text: "docker", Category: terms.CategoryTool, Importance: 0.8},
		},
		Iterations: []pipeline.IterationRecord{
			{
				Index:      1,
				Compliance: ats.Report{OverallScore: 71.5, MissingTerms: []string{"docker"}},
				Structure:  latex.StructureReport{IsValid: true, QualityScore: 90},
				Checklist: standards.Checklist{
					standards.StandardATSScore:   false,
					standards.StandardKeywords:   false,
					standards.StandardLaTeXValid: true,
					standards.StandardPDFQuality: true,
					standards.StandardNoBlocking: true,
				},
				Decision: standards.DecisionContinue,
				Feedback: "add docker",
			},
			{
				Index:      2,
				Compliance: ats.Report{OverallScore: 94.0, PresentTerms: []string{"python", "docker"}},
				Structure:  latex.StructureReport{IsValid: true, QualityScore: 95},
				Checklist: standards.Checklist{
					standards.StandardATSScore:   true,
					standards.StandardKeywords:   true,
					standards.StandardLaTeXValid: true,
					standards.StandardPDFQuality: true,
					standards.StandardNoBlocking: true,
				},
				Decision:   standards.DecisionPass,
				DraftDelta: "+40/-2 chars",
			},
		},
		FinalDraft: resume.Draft{
			LaTeX:     "\\documentclass{article}\\begin{document}x\\end{document}",
			PlainText: "x",
		},
	}
}

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	return NewWriter(cfg, nil), cfg.OutputDir
}

func TestWritePersistsAllArtifacts(t *testing.T) {
	w, _ := newTestWriter(t)

	dir, err := w.Write(sampleResult())
	require.NoError(t, err)

	for _, name := range []string{ReportFile, ResumeTexFile, ResumeTextFile, SummaryMarkdown, SummaryHTML} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteReportJSONRoundTrips(t *testing.T) {
	w, _ := newTestWriter(t)
	result := sampleResult()

	dir, err := w.Write(result)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	// Stable field names: downstream tooling parses these.
	require.Equal(t, "pass", decoded["final_status"])
	require.Equal(t, float64(2), decoded["total_iterations"])
	require.Contains(t, decoded, "iterations")
	require.Contains(t, decoded, "ranked_terms")
	require.Contains(t, decoded, "elapsed_seconds")

	iterations := decoded["iterations"].([]any)
	require.Len(t, iterations, 2)
	first := iterations[0].(map[string]any)
	require.Contains(t, first, "compliance_report")
	require.Contains(t, first, "structure_report")
	require.Contains(t, first, "standards_checklist")
	require.Equal(t, "CONTINUE", first["decision"])
}

func TestSummaryMarkdownContent(t *testing.T) {
	summary := buildSummary(sampleResult())

	require.Contains(t, summary, "# Resume Build Report")
	require.Contains(t, summary, "**Status:** PASS")
	require.Contains(t, summary, "| 1 | CONTINUE | 71.5 | 90 |")
	require.Contains(t, summary, "| 2 | PASS | 94.0 | 95 | none |")
	require.Contains(t, summary, "ats_score_met, keywords_complete")
	require.Contains(t, summary, "| python | skill | 1.00 |")
}

func TestSummaryMarksGenerationFailures(t *testing.T) {
	result := sampleResult()
	result.Iterations[0] = pipeline.IterationRecord{
		Index:           1,
		Decision:        standards.DecisionContinue,
		GenerationError: "model unavailable",
	}

	summary := buildSummary(result)
	require.Contains(t, summary, "generation failed: model unavailable")
}

func TestWriteRendersHTML(t *testing.T) {
	w, _ := newTestWriter(t)

	dir, err := w.Write(sampleResult())
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, SummaryHTML))
	require.NoError(t, err)
	require.Contains(t, string(html), "<h1")
	require.Contains(t, string(html), "Resume Build Report")
}

func TestPruneKeepsNewestRuns(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.RetainRuns = 2
	w := NewWriter(cfg, nil)

	// Pre-existing older runs; names sort by their timestamp prefix.
	for _, name := range []string{"20240101-000000-aaaa", "20240102-000000-bbbb", "20240103-000000-cccc"} {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.OutputDir, name), 0o755))
	}
	w.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	_, err := w.Write(sampleResult())
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 2, "retention must keep only the newest runs")
	require.NotContains(t, names, "20240101-000000-aaaa")
	require.NotContains(t, names, "20240102-000000-bbbb")
}
