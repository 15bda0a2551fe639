package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/repograde/repograde/internal/models"
)

// WrittenFiles lists the report paths produced by WriteReports.
type WrittenFiles struct {
	JSON    string
	CSV     string
	Summary string
}

// WriteReports writes all three report formats into dir, with a shared
// timestamp suffix so repeated runs never clobber each other.
func WriteReports(dir string, results []models.RepoResult, summary *models.BatchSummary) (*WrittenFiles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	files := &WrittenFiles{
		JSON:    filepath.Join(dir, fmt.Sprintf("qa_evaluation_results_%s.json", stamp)),
		CSV:     filepath.Join(dir, fmt.Sprintf("qa_evaluation_results_%s.csv", stamp)),
		Summary: filepath.Join(dir, fmt.Sprintf("qa_summary_%s.txt", stamp)),
	}

	if err := writeFile(files.JSON, func(f *os.File) error {
		return WriteJSON(f, results, summary)
	}); err != nil {
		return nil, err
	}
	if err := writeFile(files.CSV, func(f *os.File) error {
		return WriteCSV(f, results)
	}); err != nil {
		return nil, err
	}
	if err := writeFile(files.Summary, func(f *os.File) error {
		return WriteSummaryText(f, summary)
	}); err != nil {
		return nil, err
	}

	return files, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	if err := fn(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
