package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/repograde/repograde/internal/models"
)

// csvHeader is the stable column order of the CSV report. Category average
// columns follow in canonical category order.
var csvHeader = []string{
	"url",
	"status",
	"overall_qa_maturity_score",
	"qa_level",
	"final_verdict",
	"final_verdict_reason",
	"commit_count",
	"test_file_count",
	"total_file_count",
	"primary_language",
	"test_frameworks",
	"error_message",
}

// WriteCSV writes one row per repository, successes and failures alike.
func WriteCSV(w io.Writer, results []models.RepoResult) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, csvHeader...)
	for _, cat := range models.Categories() {
		header = append(header, cat.String()+"_avg")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range results {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", r.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func csvRow(r models.RepoResult) []string {
	if !r.IsSuccess() {
		row := []string{r.URL, "failed", "", "", "", "", "", "", "", "", "", r.ErrorMsg}
		for range models.Categories() {
			row = append(row, "")
		}
		return row
	}

	o := r.Outcome
	row := []string{
		o.URL,
		"success",
		strconv.Itoa(o.OverallScore),
		o.Level.String(),
		o.Verdict.String(),
		o.VerdictReason,
		strconv.Itoa(o.Signals.CommitCount),
		strconv.Itoa(o.Signals.TestFileCount),
		strconv.Itoa(o.Signals.TotalFileCount),
		o.Signals.PrimaryLanguage,
		strings.Join(o.Signals.TestFrameworks, ";"),
		"",
	}

	averages := o.CategoryAverages()
	for _, cat := range models.Categories() {
		row = append(row, strconv.FormatFloat(averages[cat], 'f', 1, 64))
	}
	return row
}
