package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Insight is the structured analysis the model is asked for.
type Insight struct {
	TopIssue  string   `json:"top_issue"`
	WorstArea string   `json:"worst_area"`
	Actions   []string `json:"actions"`
}

// FormatInsight renders the structured analysis as labeled plain-text lines
// for the transcript view.
func FormatInsight(in Insight) string {
	top := in.TopIssue
	if top == "" {
		top = "No data"
	}
	worst := in.WorstArea
	if worst == "" {
		worst = "N/A"
	}

	lines := []string{
		"Top Issue: " + top,
		"Worst Area: " + worst,
		"Actions:",
	}
	if len(in.Actions) == 0 {
		lines = append(lines, "1. No specific actions suggested.")
	} else {
		actions := in.Actions
		if len(actions) > 2 {
			actions = actions[:2]
		}
		for i, a := range actions {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, a))
		}
	}
	return strings.Join(lines, "\n")
}

var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")
	inlineRe    = regexp.MustCompile("`([^`]*)`")
	bulletRe    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	newlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// CleanText strips markdown noise from a free-form model reply so the
// fallback path still yields readable labeled lines.
func CleanText(text string) string {
	s := boldRe.ReplaceAllString(text, "$1")
	s = codeFenceRe.ReplaceAllString(s, "")
	s = inlineRe.ReplaceAllString(s, "$1")
	s = bulletRe.ReplaceAllString(s, "- ")
	s = newlinesRe.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
