package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repograde/repograde/internal/config"
	"github.com/repograde/repograde/internal/wizard"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a repograde.yaml configuration file",
		Long: `Init writes a repograde.yaml in the current directory. By default it
walks through an interactive setup; with --no-input it writes the default
template instead.`,
		Args:          cobra.NoArgs,
		RunE:          runInit,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("no-input", false, "Write the default template without prompting")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if noInput, _ := cmd.Flags().GetBool("no-input"); noInput {
		if err := config.WriteTemplate(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	spec, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	body, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
