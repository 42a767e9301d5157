// Package report persists one run's artifacts: the machine-readable execution
// report, the final LaTeX and plain-text resume, and human-readable summaries
// in Markdown and HTML. Old run directories are pruned to a retention count.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/pipeline"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/standards"
)

// Artifact file names within a run directory.
const (
	ReportFile      = "report.json"
	ResumeTexFile   = "resume.tex"
	ResumeTextFile  = "resume.txt"
	SummaryMarkdown = "summary.md"
	SummaryHTML     = "summary.html"
)

// Writer persists run artifacts under the configured output directory.
type Writer struct {
	cfg    config.Config
	logger logging.Logger
	now    func() time.Time
}

func NewWriter(cfg config.Config, logger logging.Logger) *Writer {
	return &Writer{cfg: cfg, logger: logging.OrNop(logger), now: time.Now}
}

// Write persists every artifact for one run and returns the run directory.
// The run directory name starts with a sortable timestamp so retention can
// prune oldest-first.
func (w *Writer) Write(result pipeline.ExecutionResult) (string, error) {
	dir := filepath.Join(w.cfg.OutputDir, fmt.Sprintf("%s-%s", w.now().Format("20060102-150405"), shortID(result.RunID)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run directory: %w", err)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode execution report: %w", err)
	}
	files := map[string][]byte{
		ReportFile:     append(encoded, '\n'),
		ResumeTexFile:  []byte(result.FinalDraft.LaTeX),
		ResumeTextFile: []byte(result.FinalDraft.PlainText),
	}

	summary := buildSummary(result)
	files[SummaryMarkdown] = []byte(summary)

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(summary), &html); err != nil {
		return "", fmt.Errorf("render summary html: %w", err)
	}
	files[SummaryHTML] = html.Bytes()

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := w.prune(); err != nil {
		// Retention is housekeeping; a failed prune must not fail the run.
		w.logger.Warn("Pruning old runs failed: %v", err)
	}

	w.logger.Info("Run artifacts written to %s", dir)
	return dir, nil
}

// prune removes the oldest run directories beyond the retention count.
func (w *Writer) prune() error {
	if w.cfg.RetainRuns <= 0 {
		return nil
	}
	entries, err := os.ReadDir(w.cfg.OutputDir)
	if err != nil {
		return err
	}
	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	if len(runs) <= w.cfg.RetainRuns {
		return nil
	}
	// Timestamp-prefixed names sort chronologically.
	sort.Strings(runs)
	for _, name := range runs[:len(runs)-w.cfg.RetainRuns] {
		if err := os.RemoveAll(filepath.Join(w.cfg.OutputDir, name)); err != nil {
			return err
		}
		w.logger.Debug("Pruned old run %s", name)
	}
	return nil
}

// buildSummary renders the human-readable Markdown report.
func buildSummary(result pipeline.ExecutionResult) string {
	var b strings.Builder

	b.WriteString("# Resume Build Report\n\n")
	fmt.Fprintf(&b, "- **Run:** %s\n", result.RunID)
	fmt.Fprintf(&b, "- **Status:** %s\n", strings.ToUpper(result.FinalStatus))
	fmt.Fprintf(&b, "- **Model:** %s\n", result.Model)
	fmt.Fprintf(&b, "- **Rounds:** %d\n", result.TotalIterations)
	fmt.Fprintf(&b, "- **Elapsed:** %.1fs\n\n", result.ElapsedSeconds)

	b.WriteString("## Rounds\n\n")
	b.WriteString("| Round | Decision | ATS Score | Quality | Failed Standards |\n")
	b.WriteString("|-------|----------|-----------|---------|------------------|\n")
	for _, rec := range result.Iterations {
		failed := failedStandards(rec)
		if rec.GenerationError != "" {
			fmt.Fprintf(&b, "| %d | %s | - | - | generation failed: %s |\n",
				rec.Index, rec.Decision, rec.GenerationError)
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %.1f | %.0f | %s |\n",
			rec.Index, rec.Decision, rec.Compliance.OverallScore, rec.Structure.QualityScore, failed)
	}
	b.WriteString("\n")

	if last := lastScoredRound(result); last != nil {
		if len(last.Compliance.MissingTerms) > 0 {
			b.WriteString("## Missing Terms\n\n")
			for _, term := range last.Compliance.MissingTerms {
				fmt.Fprintf(&b, "- %s\n", term)
			}
			b.WriteString("\n")
		}
		if len(last.Structure.SyntaxErrors) > 0 {
			b.WriteString("## Syntax Errors\n\n")
			for _, msg := range last.Structure.SyntaxErrors {
				fmt.Fprintf(&b, "- %s\n", msg)
			}
			b.WriteString("\n")
		}
	}

	if len(result.RankedTerms) > 0 {
		b.WriteString("## Ranked Terms\n\n")
		b.WriteString("| Term | Category | Importance |\n")
		b.WriteString("|------|----------|------------|\n")
		for _, term := range result.RankedTerms {
			fmt.Fprintf(&b, "| %s | %s | %.2f |\n", term.Text, term.Category, term.Importance)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func failedStandards(rec pipeline.IterationRecord) string {
	var failed []string
	for _, name := range []string{
		standards.StandardATSScore,
		standards.StandardKeywords,
		standards.StandardLaTeXValid,
		standards.StandardPDFQuality,
		standards.StandardNoBlocking,
	} {
		if ok, present := rec.Checklist[name]; present && !ok {
			failed = append(failed, name)
		}
	}
	if len(failed) == 0 {
		return "none"
	}
	return strings.Join(failed, ", ")
}

// lastScoredRound returns the newest round that reached scoring.
func lastScoredRound(result pipeline.ExecutionResult) *pipeline.IterationRecord {
	for i := len(result.Iterations) - 1; i >= 0; i-- {
		if result.Iterations[i].GenerationError == "" {
			return &result.Iterations[i]
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
