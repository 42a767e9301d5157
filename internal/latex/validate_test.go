package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateWellFormedDocument(t *testing.T) {
	v := NewValidator(nil)
	report := v.Validate(wellFormedDoc)

	require.True(t, report.IsValid)
	require.Empty(t, report.SyntaxErrors)
	require.Equal(t, 5, report.SectionCount)
	require.GreaterOrEqual(t, report.QualityScore, 85.0)
	require.LessOrEqual(t, report.QualityScore, 100.0)
}

func TestValidateDeterministic(t *testing.T) {
	v := NewValidator(nil)
	first := v.Validate(wellFormedDoc)
	second := v.Validate(wellFormedDoc)
	require.Equal(t, first, second)
}

func TestValidateUnmatchedOpeningDelimiter(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\section*{Skills}
\textbf{unclosed bold
\end{document}`
	v := NewValidator(nil)
	report := v.Validate(doc)

	require.False(t, report.IsValid)
	require.NotEmpty(t, report.SyntaxErrors)
	joined := strings.Join(report.SyntaxErrors, "; ")
	require.Contains(t, joined, "unmatched")
}

func TestValidateMissingRequiredElements(t *testing.T) {
	v := NewValidator(nil)
	report := v.Validate(`\section{Skills} some text`)

	require.False(t, report.IsValid)
	joined := strings.Join(report.SyntaxErrors, "; ")
	require.Contains(t, joined, `\documentclass`)
	require.Contains(t, joined, `\begin{document}`)
	require.Contains(t, joined, `\end{document}`)
}

func TestValidateUnclosedEnvironment(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\begin{itemize}
\item one
\end{document}`
	v := NewValidator(nil)
	report := v.Validate(doc)

	require.False(t, report.IsValid)
	joined := strings.Join(report.SyntaxErrors, "; ")
	require.Contains(t, joined, "itemize")
}

func TestValidateMismatchedEnvironmentNesting(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\begin{itemize}
\begin{center}
\end{itemize}
\end{center}
\end{document}`
	v := NewValidator(nil)
	report := v.Validate(doc)

	require.False(t, report.IsValid)
	joined := strings.Join(report.SyntaxErrors, "; ")
	require.Contains(t, joined, "mismatch")
}

func TestValidateEmptyDocumentScoresZeroWithoutCrash(t *testing.T) {
	v := NewValidator(nil)
	report := v.Validate("")

	require.False(t, report.IsValid)
	require.GreaterOrEqual(t, report.QualityScore, 0.0)
	require.LessOrEqual(t, report.QualityScore, 100.0)
	require.Equal(t, 0, report.SectionCount)
}

func TestQualityScorePenalizesFewSections(t *testing.T) {
	small := `\documentclass{article}
\begin{document}
\section*{Skills}
\begin{itemize}
\item \textbf{Python}
\end{itemize}
\end{document}`
	v := NewValidator(nil)
	report := v.Validate(small)

	require.True(t, report.IsValid)
	require.Less(t, report.QualityScore, 100.0)
	require.GreaterOrEqual(t, report.QualityScore, 0.0)
}

func TestQualityScoreStaysInBounds(t *testing.T) {
	garbage := strings.Repeat(`} { % $ & _ \end{foo} `, 50)
	v := NewValidator(nil)
	report := v.Validate(garbage)

	require.False(t, report.IsValid)
	require.GreaterOrEqual(t, report.QualityScore, 0.0)
	require.LessOrEqual(t, report.QualityScore, 100.0)
}
