package latex

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/profile"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
)

// resumeTemplate is an ATS-safe single-column article layout: plain sections,
// itemized bullets, no tables, no graphics, no multi-column packages.
const resumeTemplate = `\documentclass[11pt]{article}
\usepackage[margin=0.5in]{geometry}
\usepackage{enumitem}
\setlist{nosep}
\pagestyle{empty}

\begin{document}

% HEADER
\begin{center}
{\Large \textbf{ {{- escape .Profile.Name }} }}

{{ escape .Profile.Email }}{{ if .Profile.Phone }} \textbar{} {{ escape .Profile.Phone }}{{ end }}
\end{center}

% PROFESSIONAL SUMMARY
\section*{Professional Summary}
{{ escape .Content.ProfessionalSummary }}

% SKILLS
\section*{Skills}
\begin{itemize}
{{- range .Content.Skills }}
\item \textbf{ {{- escape .Category -}} }: {{ escape (join .Skills) }}
{{- end }}
\end{itemize}

% PROFESSIONAL EXPERIENCE
\section*{Professional Experience}
{{- range .Content.Experience }}
\textbf{ {{- escape .Title -}} } \textbar{} {{ escape .Company }}{{ if .Dates }} \textbar{} {{ escape .Dates }}{{ end }}
\begin{itemize}
{{- range .Bullets }}
\item {{ escape . }}
{{- end }}
\end{itemize}
{{- end }}

% PROJECTS
{{- if .Content.Projects }}
\section*{Projects}
{{- range .Content.Projects }}
\textbf{ {{- escape .Name -}} }
\begin{itemize}
{{- range .Bullets }}
\item {{ escape . }}
{{- end }}
\end{itemize}
{{- end }}
{{- end }}

% EDUCATION
\section*{Education}
\begin{itemize}
{{- range .Content.Education }}
\item \textbf{ {{- escape .Degree -}} }, {{ escape .Institution }}{{ if .Year }}, {{ escape .Year }}{{ end }}
{{- end }}
\end{itemize}

\end{document}
`

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`$`, `\$`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

var tmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"escape": func(s string) string { return escaper.Replace(s) },
	"join":   func(items []string) string { return strings.Join(items, ", ") },
}).Parse(resumeTemplate))

// Render fills the resume template with content and candidate contact
// details, escaping every user-supplied value.
func Render(content resume.Content, prof profile.Profile) (string, error) {
	var sb strings.Builder
	data := struct {
		Content resume.Content
		Profile profile.Profile
	}{Content: content, Profile: prof}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render latex: %w", err)
	}
	return sb.String(), nil
}
