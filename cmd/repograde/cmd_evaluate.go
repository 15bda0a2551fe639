package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repograde/repograde/internal/judge"
	"github.com/repograde/repograde/internal/models"
	"github.com/repograde/repograde/internal/orchestration"
	"github.com/repograde/repograde/internal/spinner"
)

func newEvaluateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate <repository-url>",
		Short: "Evaluate the QA maturity of one repository",
		Long: `Evaluate clones a repository, scores its QA maturity across five
categories with an AI judge, and prints the score, level, and verdict.

The exit code reflects the verdict: 0 for PASS or CONDITIONAL_PASS, 1 for
FAIL, 2 for a configuration or runtime error.`,
		Args:          cobra.ExactArgs(1),
		RunE:          runEvaluate,
		SilenceErrors: true,
	}

	cmd.Flags().String("model", "", "Override the judge model from the config")
	cmd.Flags().String("output", "", "Write the outcome as JSON to this file")
	cmd.Flags().Bool("keep-clone", false, "Keep the cloned repository on disk")
	cmd.Flags().Bool("mock", false, "Use canned scores instead of an AI judge (for dry runs)")
	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if keep, _ := cmd.Flags().GetBool("keep-clone"); keep {
		cfg.KeepClones = true
	}

	j, err := buildJudge(cmd, cfg.Model)
	if err != nil {
		return err
	}

	evaluator, err := orchestration.New(cfg, j)
	if err != nil {
		return err
	}

	stop := spinner.Start(cmd.ErrOrStderr(), fmt.Sprintf("evaluating %s", url))
	outcome, err := evaluator.Evaluate(cmd.Context(), url)
	stop()
	if err != nil {
		return err
	}

	renderOutcome(cmd.OutOrStdout(), outcome)

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := writeOutcomeJSON(path, outcome); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}

	if outcome.Verdict == models.VerdictFail {
		return &EvalFailureError{Message: fmt.Sprintf("%s failed the QA verdict: %s", url, outcome.VerdictReason)}
	}
	return nil
}

// buildJudge picks the AI judge or the canned mock, based on --mock.
func buildJudge(cmd *cobra.Command, model string) (judge.Judge, error) {
	if mock, _ := cmd.Flags().GetBool("mock"); mock {
		return &judge.MockJudge{Fixed: 5}, nil
	}
	return judge.NewCopilotJudge(judge.CopilotOptions{Model: model})
}

func writeOutcomeJSON(path string, outcome *models.EvaluationOutcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome.Export()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
