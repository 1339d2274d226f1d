package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configTemplates = map[string]string{
	"yaml": ".visionboard.yaml",
	"toml": ".visionboard.toml",
}

func newInitCmd() *cobra.Command {
	var (
		datasetPath string
		format      string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a visionboard configuration file",
		Long:  "Create a .visionboard.yaml (or .visionboard.toml) with the default check parameters.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			fileName, ok := configTemplates[format]
			if !ok {
				return fmt.Errorf("unknown format %q (valid: yaml, toml)", format)
			}
			dest := filepath.Join(absPath, fileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", fileName)
				}
			}

			content := generateConfig(format, datasetPath)

			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", fileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "signals.yaml", "Dataset file, relative to the config")
	cmd.Flags().StringVar(&format, "format", "yaml", "Config format (yaml, toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func generateConfig(format, datasetPath string) string {
	if format == "toml" {
		return fmt.Sprintf(`# visionboard configuration

dataset = %q
concurrency = 4

[checks.githubOrgMFA]
# Status of a project without any GitHub organization: unknown, failed or passed.
no_evidence = "unknown"

[checks.softwareDesignTraining]
# How long a training stays valid.
validity = "8760h"
`, datasetPath)
	}

	return fmt.Sprintf(`# visionboard configuration

dataset: %q
concurrency: 4

checks:
  githubOrgMFA:
    # Status of a project without any GitHub organization: unknown, failed or passed.
    no_evidence: unknown
  softwareDesignTraining:
    # How long a training stays valid.
    validity: 8760h

# Disable a check with:
#   checks:
#     githubOrgMFA:
#       enabled: false
`, datasetPath)
}
