package latex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
)

// StructureReport is the outcome of validating one rendered document.
type StructureReport struct {
	IsValid      bool     `json:"is_valid"`
	SyntaxErrors []string `json:"syntax_errors"`
	QualityScore float64  `json:"quality_score"` // within [0,100]
	SectionCount int      `json:"section_count"`
	BulletCount  int      `json:"bullet_count"`
}

// Quality scoring targets. Deviations subtract bounded penalties; the score
// never leaves [0,100].
const (
	minTargetSections    = 4
	maxTargetSections    = 7
	minBulletsPerSection = 1.0
	maxBulletsPerSection = 6.0

	syntaxErrorPenalty   = 10.0
	sectionRangePenalty  = 5.0 // per section outside the target range
	sectionPenaltyCap    = 20.0
	bulletDensityPenalty = 10.0
	noEmphasisPenalty    = 5.0
)

var (
	beginPattern    = regexp.MustCompile(`\\begin\{([^}]*)\}`)
	endPattern      = regexp.MustCompile(`\\end\{([^}]*)\}`)
	emphasisPattern = regexp.MustCompile(`\\(?:textbf|textit|emph)\b`)
)

// Validator checks markup well-formedness and derives a structural quality
// score. It is stateless; one instance can serve every round.
type Validator struct {
	logger logging.Logger
}

// NewValidator returns a Validator. A nil logger is replaced with a no-op one.
func NewValidator(logger logging.Logger) *Validator {
	return &Validator{logger: logging.OrNop(logger)}
}

// Validate checks markup syntax and scores structural quality using the scan
// facts. Deterministic and pure.
func (v *Validator) Validate(markup string) StructureReport {
	scan := Scan(markup)
	return v.ValidateScanned(markup, scan)
}

// ValidateScanned is Validate for callers that already hold the ScanResult,
// so the scanner runs once per round.
func (v *Validator) ValidateScanned(markup string, scan ScanResult) StructureReport {
	report := StructureReport{
		SectionCount: scan.SectionCount,
		BulletCount:  scan.BulletCount,
	}

	report.SyntaxErrors = append(report.SyntaxErrors, checkRequiredElements(markup)...)
	report.SyntaxErrors = append(report.SyntaxErrors, checkDelimiterBalance(markup)...)
	report.SyntaxErrors = append(report.SyntaxErrors, checkEnvironments(markup)...)
	// Escape problems render wrong or break compilation; surface them as errors.
	report.SyntaxErrors = append(report.SyntaxErrors, scan.EscapeViolations...)

	report.IsValid = len(report.SyntaxErrors) == 0
	report.QualityScore = v.qualityScore(markup, scan, len(report.SyntaxErrors))

	v.logger.Debug("Structure validation: valid=%v errors=%d quality=%.0f",
		report.IsValid, len(report.SyntaxErrors), report.QualityScore)
	return report
}

func checkRequiredElements(markup string) []string {
	var errs []string
	required := []struct {
		marker  string
		message string
	}{
		{`\documentclass`, `missing \documentclass declaration`},
		{`\begin{document}`, `missing \begin{document}`},
		{`\end{document}`, `missing \end{document}`},
	}
	for _, req := range required {
		if !strings.Contains(markup, req.marker) {
			errs = append(errs, req.message)
		}
	}
	return errs
}

// checkDelimiterBalance walks the document counting unescaped grouping
// delimiters. Reported messages name the imbalance direction and count.
func checkDelimiterBalance(markup string) []string {
	var errs []string
	braces, brackets := 0, 0
	minBraces := 0
	for i := 0; i < len(markup); i++ {
		if i > 0 && markup[i-1] == '\\' {
			continue
		}
		switch markup[i] {
		case '{':
			braces++
		case '}':
			braces--
			if braces < minBraces {
				minBraces = braces
			}
		case '[':
			brackets++
		case ']':
			brackets--
		}
	}
	switch {
	case braces > 0:
		errs = append(errs, fmt.Sprintf("unmatched opening delimiter: %d { without closing }", braces))
	case braces < 0:
		errs = append(errs, fmt.Sprintf("unmatched closing delimiter: %d } without opening {", -braces))
	case minBraces < 0:
		errs = append(errs, "closing } appears before its opening {")
	}
	if brackets != 0 {
		errs = append(errs, fmt.Sprintf("unbalanced brackets: net %+d", brackets))
	}
	return errs
}

// checkEnvironments verifies every \begin{env} has a matching \end{env} in
// proper nesting order.
func checkEnvironments(markup string) []string {
	type envToken struct {
		name  string
		open  bool
		index int
	}
	var tokens []envToken
	for _, m := range beginPattern.FindAllStringSubmatchIndex(markup, -1) {
		tokens = append(tokens, envToken{name: markup[m[2]:m[3]], open: true, index: m[0]})
	}
	for _, m := range endPattern.FindAllStringSubmatchIndex(markup, -1) {
		tokens = append(tokens, envToken{name: markup[m[2]:m[3]], open: false, index: m[0]})
	}
	// Restore document order without assuming regexp result interleaving.
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j].index < tokens[j-1].index; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}

	var errs []string
	var stack []string
	for _, tok := range tokens {
		if tok.open {
			stack = append(stack, tok.name)
			continue
		}
		if len(stack) == 0 {
			errs = append(errs, fmt.Sprintf(`\end{%s} without matching \begin`, tok.name))
			continue
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top != tok.name {
			errs = append(errs, fmt.Sprintf(`environment mismatch: \begin{%s} closed by \end{%s}`, top, tok.name))
		}
	}
	for _, name := range stack {
		errs = append(errs, fmt.Sprintf(`\begin{%s} is never closed`, name))
	}
	return errs
}

// qualityScore derives the 0-100 structural quality score: syntax errors,
// section count outside the target range, and bullet density outside the
// target band each subtract a bounded penalty.
func (v *Validator) qualityScore(markup string, scan ScanResult, errorCount int) float64 {
	score := 100.0

	score -= float64(errorCount) * syntaxErrorPenalty

	sectionPenalty := 0.0
	switch {
	case scan.SectionCount < minTargetSections:
		sectionPenalty = float64(minTargetSections-scan.SectionCount) * sectionRangePenalty
	case scan.SectionCount > maxTargetSections:
		sectionPenalty = float64(scan.SectionCount-maxTargetSections) * sectionRangePenalty
	}
	if sectionPenalty > sectionPenaltyCap {
		sectionPenalty = sectionPenaltyCap
	}
	score -= sectionPenalty

	if scan.SectionCount > 0 {
		density := float64(scan.BulletCount) / float64(scan.SectionCount)
		if density < minBulletsPerSection || density > maxBulletsPerSection {
			score -= bulletDensityPenalty
		}
	} else if scan.BulletCount == 0 {
		score -= bulletDensityPenalty
	}

	if !emphasisPattern.MatchString(markup) {
		score -= noEmphasisPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
