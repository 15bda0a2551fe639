package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/repograde/repograde/internal/models"
)

const scoreBarWidth = 10

// renderOutcome prints a single repository's evaluation as an aligned table
// of category scores followed by the verdict block.
func renderOutcome(w io.Writer, outcome *models.EvaluationOutcome) {
	fmt.Fprintf(w, "\n%s\n", outcome.URL)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", runewidth.StringWidth(outcome.URL)))

	averages := outcome.CategoryAverages()
	nameWidth := 0
	for _, cat := range models.Categories() {
		if cw := runewidth.StringWidth(cat.String()); cw > nameWidth {
			nameWidth = cw
		}
	}

	for _, cat := range models.Categories() {
		avg := averages[cat]
		fmt.Fprintf(w, "  %s  %4.1f  %s\n", pad(cat.String(), nameWidth), avg, scoreBar(avg))
	}

	fmt.Fprintf(w, "\n  Overall score: %d/100 (%s)\n", outcome.OverallScore, outcome.Level)
	fmt.Fprintf(w, "  Verdict: %s\n", verdictDisplay(outcome.Verdict))
	if outcome.VerdictReason != "" {
		fmt.Fprintf(w, "  %s\n", outcome.VerdictReason)
	}

	renderLabeled(w, "Strengths", outcome.Strengths)
	renderLabeled(w, "Improvement areas", outcome.Improvements)
	fmt.Fprintln(w)
}

// renderBatchSummary prints the per-repository result table for a batch.
func renderBatchSummary(w io.Writer, results []models.RepoResult) {
	urlWidth := runewidth.StringWidth("Repository")
	for _, r := range results {
		if rw := runewidth.StringWidth(r.URL); rw > urlWidth {
			urlWidth = rw
		}
	}

	fmt.Fprintf(w, "\n%s  %5s  %-12s  %s\n", pad("Repository", urlWidth), "Score", "Level", "Verdict")
	for _, r := range results {
		if !r.IsSuccess() {
			fmt.Fprintf(w, "%s  %5s  %-12s  %s\n", pad(r.URL, urlWidth), "-", "-", "error: "+r.ErrorMsg)
			continue
		}
		o := r.Outcome
		fmt.Fprintf(w, "%s  %5d  %-12s  %s\n", pad(o.URL, urlWidth), o.OverallScore, o.Level, verdictDisplay(o.Verdict))
	}
	fmt.Fprintln(w)
}

func renderLabeled(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}

// scoreBar renders a 0-10 average as a fixed-width bar.
func scoreBar(avg float64) string {
	filled := int(avg * scoreBarWidth / 10)
	if filled > scoreBarWidth {
		filled = scoreBarWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

func verdictDisplay(v models.Verdict) string {
	switch v {
	case models.VerdictPass:
		return "✓ PASS"
	case models.VerdictConditionalPass:
		return "~ CONDITIONAL PASS"
	case models.VerdictFail:
		return "✗ FAIL"
	default:
		return v.String()
	}
}

func pad(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
