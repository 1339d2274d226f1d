package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/visionboard/internal/adapters/outbound/tui"
	"github.com/openkraft/visionboard/internal/domain/validator"
)

type checkInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func newChecksCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List the checks visionboard can evaluate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := validator.Codes()
			if !jsonOutput {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderChecks(codes))
				return nil
			}

			infos := make([]checkInfo, 0, len(codes))
			for _, code := range codes {
				infos = append(infos, checkInfo{Code: string(code), Name: tui.DisplayName(code)})
			}
			return renderJSON(cmd, infos)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
