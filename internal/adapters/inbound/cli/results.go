package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/visionboard/internal/adapters/outbound/history"
	"github.com/openkraft/visionboard/internal/adapters/outbound/tui"
)

func newResultsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "results [path]",
		Short: "Show results saved by evaluate --save",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			workspace, err := workspaceDir(path)
			if err != nil {
				return err
			}

			stored, err := history.New().Load(workspace)
			if err != nil {
				return fmt.Errorf("loading results: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, stored)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStoredResults(stored))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
