// Package reporting renders batch evaluation results as JSON, CSV, and a
// human-readable text summary.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/repograde/repograde/internal/models"
)

// Report is the top-level JSON document for a batch run.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Summary     *models.BatchSummary `json:"summary"`
	Results     []map[string]any     `json:"results"`
}

// WriteJSON writes the full report document to w.
func WriteJSON(w io.Writer, results []models.RepoResult, summary *models.BatchSummary) error {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
		Results:     make([]map[string]any, 0, len(results)),
	}
	for _, r := range results {
		report.Results = append(report.Results, r.Export())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}
