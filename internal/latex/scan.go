// Package latex contains the document-side machinery of the pipeline: the
// scanner that recovers plain text and structural facts from rendered LaTeX,
// the structure validator, and the resume template renderer.
package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Canonical section names the scanner recognizes. The compliance scorer keys
// its per-section coverage on these.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionSkills     = "skills"
	SectionProjects   = "projects"
	SectionEducation  = "education"
)

// ScanResult is the best-effort structural scan of a rendered document.
// Scanning never fails: malformed input produces a partial result with
// populated EscapeViolations.
type ScanResult struct {
	PlainText        string
	Sections         map[string]string // canonical section name -> plain text
	SectionCount     int
	BulletCount      int
	EscapeViolations []string
}

var (
	sectionPattern = regexp.MustCompile(`\\(?:sub)?section\*?\{([^}]*)\}`)
	itemPattern    = regexp.MustCompile(`\\item\b`)
	optArgPattern  = regexp.MustCompile(`\\[a-zA-Z]+\*?\[[^\[\]]*\]`)
	envPattern     = regexp.MustCompile(`\\(?:begin|end)\{[^}]*\}`)
	wrapCmdPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?\{`)
	bareCmdPattern = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	multiSpace     = regexp.MustCompile(`[ \t]+`)
	multiNewline   = regexp.MustCompile(`\n{2,}`)
)

// preambleCommands are dropped together with their braced argument; every
// other command keeps its argument as visible text.
var preambleCommands = map[string]bool{
	"documentclass": true,
	"usepackage":    true,
	"geometry":      true,
	"definecolor":   true,
	"hypersetup":    true,
	"titleformat":   true,
	"titlespacing":  true,
	"setlist":       true,
	"pagestyle":     true,
	"renewcommand":  true,
	"setlength":     true,
	"familydefault": true,
	"label":         true,
	"vspace":        true,
	"hspace":        true,
}

// Scan recovers plain text and structural facts from markup. It never
// returns an error; anything it cannot make sense of is reported through
// EscapeViolations and otherwise skipped.
func Scan(markup string) ScanResult {
	result := ScanResult{Sections: map[string]string{}}
	if strings.TrimSpace(markup) == "" {
		return result
	}

	result.EscapeViolations = findEscapeViolations(markup)
	result.BulletCount = len(itemPattern.FindAllString(markup, -1))

	sections := sectionPattern.FindAllStringSubmatchIndex(markup, -1)
	result.SectionCount = len(sections)

	for i, match := range sections {
		title := markup[match[2]:match[3]]
		bodyStart := match[1]
		bodyEnd := len(markup)
		if i+1 < len(sections) {
			bodyEnd = sections[i+1][0]
		} else if idx := strings.Index(markup[bodyStart:], `\end{document}`); idx >= 0 {
			bodyEnd = bodyStart + idx
		}
		canonical := canonicalSectionName(title)
		if canonical == "" {
			continue
		}
		body := stripMarkup(markup[bodyStart:bodyEnd])
		if existing, ok := result.Sections[canonical]; ok {
			result.Sections[canonical] = existing + "\n" + body
		} else {
			result.Sections[canonical] = body
		}
	}

	result.PlainText = stripMarkup(markup)
	return result
}

// canonicalSectionName maps a section heading to one of the canonical names,
// or "" when unrecognized.
func canonicalSectionName(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "skill"):
		return SectionSkills
	case strings.Contains(lower, "experience") || strings.Contains(lower, "employment"):
		return SectionExperience
	case strings.Contains(lower, "project"):
		return SectionProjects
	case strings.Contains(lower, "summary") || strings.Contains(lower, "objective"):
		return SectionSummary
	case strings.Contains(lower, "education"):
		return SectionEducation
	default:
		return ""
	}
}

// stripMarkup removes LaTeX control sequences while keeping visible text.
// Wrapper commands (\textbf{X}, \section{X}) keep their argument; preamble
// commands drop it.
func stripMarkup(markup string) string {
	text := markup

	// Comment lines. An escaped \% is not a comment.
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "%") {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = envPattern.ReplaceAllString(text, "")
	text = optArgPattern.ReplaceAllString(text, "")
	text = itemPattern.ReplaceAllString(text, "")

	// Peel braced command arguments innermost-first so nested wrappers like
	// \textbf{\emph{x}} resolve. Bounded to avoid spinning on pathological input.
	for i := 0; i < 20; i++ {
		replaced := false
		text = replaceAllSubmatchFunc(wrapCmdPattern, text, func(start, open int) (string, int, bool) {
			name := strings.TrimSuffix(strings.TrimPrefix(text[start:open], `\`), "{")
			name = strings.TrimSuffix(name, "*")
			closeIdx := matchingBrace(text, open)
			if closeIdx < 0 {
				return "", 0, false
			}
			arg := text[open+1 : closeIdx]
			if strings.ContainsRune(arg, '{') || strings.ContainsRune(arg, '\\') {
				return "", 0, false // not innermost yet
			}
			replaced = true
			if preambleCommands[name] {
				return "", closeIdx + 1, true
			}
			return arg, closeIdx + 1, true
		})
		if !replaced {
			break
		}
	}

	// Park escaped characters so the raw-character sweep below cannot eat
	// them, then restore.
	text = strings.NewReplacer(
		`\%`, "\x00P", `\&`, "\x00A", `\#`, "\x00H",
		`\_`, "\x00U", `\$`, "\x00D", `\{`, "\x00L", `\}`, "\x00R",
		`\\`, " ",
	).Replace(text)
	text = bareCmdPattern.ReplaceAllString(text, "")
	text = strings.NewReplacer("{", "", "}", "", "$", "", "~", " ").Replace(text)
	text = strings.NewReplacer(
		"\x00P", "%", "\x00A", "&", "\x00H", "#",
		"\x00U", "_", "\x00D", "$", "\x00L", "{", "\x00R", "}",
	).Replace(text)

	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// replaceAllSubmatchFunc rewrites text by scanning for pattern matches
// (command name up to and including the opening brace) and letting fn decide
// the replacement span. fn returns the replacement, the index after the
// consumed span, and whether it consumed anything.
func replaceAllSubmatchFunc(pattern *regexp.Regexp, text string, fn func(start, open int) (string, int, bool)) string {
	var sb strings.Builder
	last := 0
	for {
		loc := pattern.FindStringIndex(text[last:])
		if loc == nil {
			sb.WriteString(text[last:])
			break
		}
		start := last + loc[0]
		open := last + loc[1] - 1 // position of '{'
		replacement, next, ok := fn(start, open)
		if !ok {
			sb.WriteString(text[last : start+1])
			last = start + 1
			continue
		}
		sb.WriteString(text[last:start])
		sb.WriteString(replacement)
		last = next
	}
	return sb.String()
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// findEscapeViolations flags characters that must be escaped in LaTeX but
// appear raw in the document body: & # _ $ anywhere, % when glued to a word
// (a line-leading % is a comment, not content), and unmatched braces.
func findEscapeViolations(markup string) []string {
	var violations []string
	counts := map[string]int{}
	openBraces, closeBraces := 0, 0

	for i := 0; i < len(markup); i++ {
		c := markup[i]
		escaped := i > 0 && markup[i-1] == '\\'
		switch c {
		case '{':
			if !escaped {
				openBraces++
			}
		case '}':
			if !escaped {
				closeBraces++
			}
		case '&', '#', '_':
			if !escaped {
				counts[string(c)]++
			}
		case '$':
			// $...$ math toggles come in pairs; a lone $ is flagged below.
			if !escaped {
				counts["$"]++
			}
		case '%':
			if !escaped && i > 0 && isWordByte(markup[i-1]) {
				counts["%"]++
			}
		}
	}

	for _, ch := range []string{"&", "#", "_", "%"} {
		if n := counts[ch]; n > 0 {
			violations = append(violations, describeUnescaped(ch, n))
		}
	}
	if counts["$"]%2 != 0 {
		violations = append(violations, "unpaired $ math delimiter")
	}
	if openBraces != closeBraces {
		violations = append(violations, describeBraceImbalance(openBraces, closeBraces))
	}
	return violations
}

func describeUnescaped(ch string, n int) string {
	if n == 1 {
		return "unescaped " + ch
	}
	return fmt.Sprintf("unescaped %s (%d occurrences)", ch, n)
}

func describeBraceImbalance(open, closed int) string {
	return fmt.Sprintf("unmatched braces: %d open, %d close", open, closed)
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
