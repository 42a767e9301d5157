// Package terms extracts and importance-ranks the salient terms of a job
// description. Ranking happens once per run; every scoring round reuses the
// same ordered term list.
package terms

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
)

// RankedTerm is one salient term of the job description.
type RankedTerm struct {
	Text       string   `json:"text"`
	Category   Category `json:"category"`
	Importance float64  `json:"importance"` // within [0,1]
}

// Ranker turns a job description into an ordered, deduplicated term list.
// The zero value is not usable; construct with NewRanker.
type Ranker struct {
	logger logging.Logger
}

// NewRanker returns a Ranker. A nil logger is replaced with a no-op one.
func NewRanker(logger logging.Logger) *Ranker {
	return &Ranker{logger: logging.OrNop(logger)}
}

const (
	frequencyWeight  = 0.7
	earlyBonusWeight = 0.3
)

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#/.-]*`)

type occurrence struct {
	text     string
	category Category
	count    int
	first    int // byte offset of first occurrence in the normalized text
}

// Rank extracts terms from specText, classifies them, and orders them by
// importance (ties broken by first occurrence). It is idempotent: the same
// input always yields the same ordered output. Blank input is an input error.
func (r *Ranker) Rank(specText string) ([]RankedTerm, error) {
	if strings.TrimSpace(specText) == "" {
		return nil, errors.NewInputError("specification_text", "must not be blank")
	}

	norm := normalize(specText)
	found := map[string]*occurrence{}

	// Phrases first, so "machine learning" is one term rather than two
	// soft-category tokens.
	for phrase, category := range vocabulary {
		if !strings.Contains(phrase, " ") {
			continue
		}
		count, first := countPhrase(norm, phrase)
		if count > 0 {
			found[phrase] = &occurrence{text: phrase, category: category, count: count, first: first}
		}
	}

	for _, loc := range tokenPattern.FindAllStringIndex(norm, -1) {
		token := norm[loc[0]:loc[1]]
		token = strings.Trim(token, "./-")
		if token == "" || stopwords[token] {
			continue
		}
		category, known := vocabulary[token]
		if !known {
			if len(token) < 4 {
				continue
			}
			category = CategorySoft
		}
		if occ, ok := found[token]; ok {
			occ.count++
			continue
		}
		found[token] = &occurrence{text: token, category: category, count: 1, first: loc[0]}
	}

	if len(found) == 0 {
		return nil, errors.NewInputError("specification_text", "no rankable terms found")
	}

	maxCount := 0
	for _, occ := range found {
		if occ.count > maxCount {
			maxCount = occ.count
		}
	}

	earlyCutoff := len(norm) / 3
	ranked := make([]RankedTerm, 0, len(found))
	for _, occ := range found {
		importance := frequencyWeight * float64(occ.count) / float64(maxCount)
		if occ.first <= earlyCutoff {
			importance += earlyBonusWeight
		}
		ranked = append(ranked, RankedTerm{
			Text:       occ.text,
			Category:   occ.category,
			Importance: clamp01(importance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Importance != ranked[j].Importance {
			return ranked[i].Importance > ranked[j].Importance
		}
		return found[ranked[i].Text].first < found[ranked[j].Text].first
	})

	r.logger.Info("Ranked %d terms from job description (%d candidates)", len(ranked), len(found))
	return ranked, nil
}

// normalize lowercases and strips punctuation that is not part of a term
// (keeping + # / . - for tokens like c++, c#, ci/cd, scikit-learn).
func normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' || r == '#' || r == '/' || r == '.' || r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// countPhrase counts whole-word occurrences of phrase in text and returns the
// offset of the first one, or (0, -1) when absent.
func countPhrase(text, phrase string) (int, int) {
	count := 0
	first := -1
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			break
		}
		abs := start + idx
		end := abs + len(phrase)
		leftOK := abs == 0 || text[abs-1] == ' '
		rightOK := end == len(text) || text[end] == ' '
		if leftOK && rightOK {
			count++
			if first < 0 {
				first = abs
			}
		}
		start = abs + 1
	}
	return count, first
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
