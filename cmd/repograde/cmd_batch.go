package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repograde/repograde/internal/models"
	"github.com/repograde/repograde/internal/orchestration"
	"github.com/repograde/repograde/internal/reporting"
	"github.com/repograde/repograde/internal/scoring"
)

func newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <url-file>",
		Short: "Evaluate a batch of repositories from a URL list",
		Long: `Batch reads repository URLs from a file (one per line; blank lines and
lines starting with # are skipped), evaluates them concurrently, and writes
JSON, CSV, and text summary reports.

The exit code is 1 when any repository could not be evaluated or received a
FAIL verdict, 2 for a configuration or runtime error.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runBatch,
		SilenceErrors: true,
	}

	cmd.Flags().String("model", "", "Override the judge model from the config")
	cmd.Flags().Int("workers", 0, "Override the number of concurrent evaluations")
	cmd.Flags().String("output-dir", "", "Override the report directory from the config")
	cmd.Flags().Bool("mock", false, "Use canned scores instead of an AI judge (for dry runs)")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	urls, err := readURLFile(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("%s contains no repository URLs", args[0])
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}

	j, err := buildJudge(cmd, cfg.Model)
	if err != nil {
		return err
	}

	evaluator, err := orchestration.New(cfg, j)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Evaluating %d repositories with %d workers\n", len(urls), cfg.Workers)

	results, err := evaluator.EvaluateBatch(cmd.Context(), urls, cfg.Workers, func(done, total int, result models.RepoResult) {
		status := "ok"
		if !result.IsSuccess() {
			status = "failed"
		}
		fmt.Fprintf(out, "[%d/%d] %s (%s)\n", done, total, result.URL, status)
	})
	if err != nil {
		return err
	}

	summary, err := scoring.Summarize(results)
	if err != nil {
		return err
	}

	renderBatchSummary(out, results)
	if err := reporting.WriteSummaryText(out, summary); err != nil {
		return err
	}

	files, err := reporting.WriteReports(cfg.OutputDir, results, summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Reports written to %s, %s, %s\n", files.JSON, files.CSV, files.Summary)

	if err := batchFailure(summary); err != nil {
		return err
	}
	return nil
}

// batchFailure decides the non-zero exit for a completed batch: any
// repository that could not be evaluated or that received a FAIL verdict.
func batchFailure(summary *models.BatchSummary) error {
	var reasons []string
	if summary.FailedEvaluations > 0 {
		reasons = append(reasons, fmt.Sprintf("%d of %d repositories could not be evaluated", summary.FailedEvaluations, summary.TotalRepositories))
	}
	if failed := summary.VerdictDistribution[models.VerdictFail]; failed > 0 {
		reasons = append(reasons, fmt.Sprintf("%d received a FAIL verdict", failed))
	}
	if len(reasons) == 0 {
		return nil
	}
	return &EvalFailureError{Message: strings.Join(reasons, "; ")}
}

// readURLFile parses a URL list file: one URL per line, blank lines and
// #-comments skipped.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return urls, nil
}
