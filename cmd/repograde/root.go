package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repograde/repograde/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repograde",
		Short: "repograde - QA maturity scoring for git repositories",
		Long: `repograde clones git repositories, assesses their QA maturity with an AI
judge, and produces a score, level, and hiring verdict per repository.

It evaluates test automation, CI/CD pipelines, quality process, technical
skills, and repository structure, then reports results as JSON, CSV, and a
plain-text summary.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", config.DefaultFileName, "Path to the configuration file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig resolves the shared --config flag and loads tool configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}
