package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInsight(t *testing.T) {
	got := FormatInsight(Insight{
		TopIssue:  "No Internet",
		WorstArea: "Bhola",
		Actions:   []string{"Inspect the Bhola backbone", "Schedule ONU replacements", "Third action is dropped"},
	})

	want := "Top Issue: No Internet\n" +
		"Worst Area: Bhola\n" +
		"Actions:\n" +
		"1. Inspect the Bhola backbone\n" +
		"2. Schedule ONU replacements"
	assert.Equal(t, want, got)
}

func TestFormatInsightEmpty(t *testing.T) {
	got := FormatInsight(Insight{})

	want := "Top Issue: No data\n" +
		"Worst Area: N/A\n" +
		"Actions:\n" +
		"1. No specific actions suggested."
	assert.Equal(t, want, got)
}

func TestCleanText(t *testing.T) {
	in := "**Summary**\n\n\n\n* first point\n- second point\nuse `restart` now\n```\nignored code\n```"
	got := CleanText(in)

	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "`")
	assert.NotContains(t, got, "ignored code")
	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "- first point")
	assert.Contains(t, got, "restart")
}
