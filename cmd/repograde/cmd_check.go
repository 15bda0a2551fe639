package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repograde/repograde/internal/gitrepo"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the environment is ready for evaluations",
		Long: `Check verifies the local environment: the git binary, the configuration
file, the GitHub token, and the report directory.

Required checks must pass before evaluate or batch will work; advisory
checks only affect private repositories and caching.`,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
		SilenceErrors: true,
	}
	cmd.Flags().String("format", "text", "Output format: text | json")
	return cmd
}

type envCheck struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Required bool   `json:"required"`
	Detail   string `json:"detail,omitempty"`
}

type checkReport struct {
	Timestamp string     `json:"timestamp"`
	Ready     bool       `json:"ready"`
	Checks    []envCheck `json:"checks"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	report := buildCheckReport(cmd)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	case "text":
		renderCheckReport(cmd.OutOrStdout(), report)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	if !report.Ready {
		return fmt.Errorf("environment is not ready for evaluations")
	}
	return nil
}

func buildCheckReport(cmd *cobra.Command) *checkReport {
	report := &checkReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Ready:     true,
	}

	add := func(c envCheck) {
		if c.Required && !c.Passed {
			report.Ready = false
		}
		report.Checks = append(report.Checks, c)
	}

	add(envCheck{
		Name:     "git binary",
		Passed:   gitrepo.GitAvailable(),
		Required: true,
		Detail:   "git must be on PATH to clone repositories",
	})

	cfg, err := loadConfig(cmd)
	if err != nil {
		add(envCheck{Name: "configuration", Passed: false, Required: true, Detail: err.Error()})
		return report
	}
	add(envCheck{Name: "configuration", Passed: true, Required: true})

	add(envCheck{
		Name:     "github token",
		Passed:   cfg.GitHubToken != "",
		Required: false,
		Detail:   "set GITHUB_TOKEN to evaluate private repositories",
	})

	add(envCheck{
		Name:     "report directory",
		Passed:   dirWritable(cfg.OutputDir),
		Required: true,
		Detail:   fmt.Sprintf("reports are written to %s", cfg.OutputDir),
	})

	return report
}

// dirWritable reports whether dir exists (or can be created) and accepts a
// test file.
func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".repograde-check-*")
	if err != nil {
		return false
	}
	probe.Close()          //nolint:errcheck
	os.Remove(probe.Name()) //nolint:errcheck
	return true
}

func renderCheckReport(w io.Writer, report *checkReport) {
	for _, c := range report.Checks {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
			if !c.Required {
				mark = "~"
			}
		}
		fmt.Fprintf(w, "  %s %s\n", mark, c.Name)
		if !c.Passed && c.Detail != "" {
			fmt.Fprintf(w, "      %s\n", c.Detail)
		}
	}
	if report.Ready {
		fmt.Fprintln(w, "\nReady to evaluate repositories.")
	} else {
		fmt.Fprintln(w, "\nFix the failed checks above before running evaluations.")
	}
}
