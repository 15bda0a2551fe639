package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/repograde/repograde/internal/models"
)

// WriteSummaryText renders the batch summary as a plain-text report.
func WriteSummaryText(w io.Writer, summary *models.BatchSummary) error {
	var sb strings.Builder

	sb.WriteString("QA Repository Evaluation Summary\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&sb, "Repositories evaluated: %d\n", summary.TotalRepositories)
	fmt.Fprintf(&sb, "Successful: %d, failed: %d (%.1f%% success rate)\n",
		summary.SuccessfulEvaluations, summary.FailedEvaluations, summary.SuccessRate*100)
	fmt.Fprintf(&sb, "Average QA maturity score: %.1f\n", summary.AverageScore)
	if summary.SuccessfulEvaluations > 0 {
		fmt.Fprintf(&sb, "Score range: %d-%d (std dev %.1f)\n", summary.MinScore, summary.MaxScore, summary.ScoreStdDev)
	}
	sb.WriteByte('\n')

	sb.WriteString("Score distribution:\n")
	for _, bucket := range models.ScoreBuckets() {
		fmt.Fprintf(&sb, "  %-22s %d\n", bucket, summary.ScoreDistribution[bucket])
	}
	sb.WriteByte('\n')

	if len(summary.VerdictDistribution) > 0 {
		sb.WriteString("Verdicts:\n")
		for _, v := range []models.Verdict{models.VerdictPass, models.VerdictConditionalPass, models.VerdictFail} {
			if count, ok := summary.VerdictDistribution[v]; ok {
				fmt.Fprintf(&sb, "  %-18s %d\n", v.String(), count)
			}
		}
		sb.WriteByte('\n')
	}

	writeList(&sb, "Common strengths", summary.CommonStrengths)
	writeList(&sb, "Common improvement areas", summary.CommonImprovements)
	writeList(&sb, "Top frameworks", summary.TopFrameworks)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
	sb.WriteByte('\n')
}
