package terms

import (
	"strings"
	"testing"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/stretchr/testify/require"
)

const sampleJD = `We are hiring a Data Engineer.
Requirements: Python, SQL, Docker and strong experience with Kafka.
Python is used across all our data pipelines. Familiarity with machine learning
is a plus. Bachelor degree in computer science required. Good communication.`

func TestRankBlankInputFails(t *testing.T) {
	ranker := NewRanker(nil)
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		_, err := ranker.Rank(input)
		require.Error(t, err)
		require.True(t, errors.IsInput(err))
	}
}

func TestRankIsIdempotent(t *testing.T) {
	ranker := NewRanker(nil)
	first, err := ranker.Rank(sampleJD)
	require.NoError(t, err)
	second, err := ranker.Rank(sampleJD)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRankFindsAndClassifiesKnownTerms(t *testing.T) {
	ranker := NewRanker(nil)
	ranked, err := ranker.Rank(sampleJD)
	require.NoError(t, err)

	byText := map[string]RankedTerm{}
	for _, term := range ranked {
		byText[term.Text] = term
	}

	require.Equal(t, CategorySkill, byText["python"].Category)
	require.Equal(t, CategorySkill, byText["sql"].Category)
	require.Equal(t, CategoryTool, byText["docker"].Category)
	require.Equal(t, CategoryTool, byText["kafka"].Category)
	require.Equal(t, CategorySkill, byText["machine learning"].Category)
	require.Equal(t, CategoryQualification, byText["bachelor"].Category)
	require.Equal(t, CategorySoft, byText["communication"].Category)
}

func TestRankImportanceOrderingAndBounds(t *testing.T) {
	ranker := NewRanker(nil)
	ranked, err := ranker.Rank(sampleJD)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	for i, term := range ranked {
		require.GreaterOrEqual(t, term.Importance, 0.0, "term %s", term.Text)
		require.LessOrEqual(t, term.Importance, 1.0, "term %s", term.Text)
		if i > 0 {
			require.LessOrEqual(t, term.Importance, ranked[i-1].Importance)
		}
	}

	// Python appears twice and early: it must outrank single-occurrence terms.
	var python, kafka RankedTerm
	for _, term := range ranked {
		switch term.Text {
		case "python":
			python = term
		case "kafka":
			kafka = term
		}
	}
	require.Greater(t, python.Importance, kafka.Importance)
}

func TestRankDeduplicatesCaseInsensitively(t *testing.T) {
	ranker := NewRanker(nil)
	ranked, err := ranker.Rank("Python python PYTHON. Python!")
	require.NoError(t, err)

	count := 0
	for _, term := range ranked {
		if term.Text == "python" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestRankStopwordsAndShortTokensDropped(t *testing.T) {
	ranker := NewRanker(nil)
	ranked, err := ranker.Rank("the and for with must required looking Python")
	require.NoError(t, err)
	for _, term := range ranked {
		require.NotContains(t, []string{"the", "and", "for", "with", "must"}, term.Text)
	}
	require.Equal(t, "python", ranked[0].Text)
}

func TestRankPhraseBoundaries(t *testing.T) {
	ranker := NewRanker(nil)
	// "power bi" must not match inside "horsepower bike".
	ranked, err := ranker.Rank("horsepower bike shop assistant wanted, no power bi here though: power bi")
	require.NoError(t, err)
	var found bool
	for _, term := range ranked {
		if term.Text == "power bi" {
			found = true
		}
	}
	require.True(t, found)
}

func TestNormalizeKeepsTermPunctuation(t *testing.T) {
	norm := normalize("CI/CD, scikit-learn & C++!")
	require.True(t, strings.Contains(norm, "ci/cd"))
	require.True(t, strings.Contains(norm, "scikit-learn"))
}
