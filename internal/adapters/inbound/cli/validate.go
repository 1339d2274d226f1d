package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/visionboard/internal/adapters/outbound/config"
	"github.com/openkraft/visionboard/internal/adapters/outbound/dataset"
)

type validationResult struct {
	Dataset string   `json:"dataset"`
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
}

func newValidateCmd() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validate [dataset]",
		Short: "Validate a dataset file against the schema",
		Long:  "Check that a dataset file is well-formed before evaluating it. Without an argument the dataset named in the config is validated.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := config.New().Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				path = cfg.Dataset
			}
			if path == "" {
				return fmt.Errorf("specify a dataset or set one in the config")
			}

			errs, err := dataset.ValidateFile(path)
			if err != nil {
				return err
			}
			result := validationResult{Dataset: path, Valid: len(errs) == 0, Errors: errs}
			if result.Errors == nil {
				result.Errors = []string{}
			}

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			} else {
				for _, e := range errs {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
				}
			}

			if !result.Valid {
				return fmt.Errorf("dataset %s has %d schema error(s)", path, len(errs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".", "Workspace directory or config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
