package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/openkraft/visionboard/internal/adapters/outbound/config"
	"github.com/openkraft/visionboard/internal/adapters/outbound/dataset"
	"github.com/openkraft/visionboard/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/visionboard/internal/adapters/outbound/history"
	"github.com/openkraft/visionboard/internal/adapters/outbound/tui"
	"github.com/openkraft/visionboard/internal/application"
	"github.com/openkraft/visionboard/internal/domain"
)

func newEvaluateCmd() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
		ciMode     bool
		checks     []string
		nowFlag    string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate [dataset]",
		Short: "Evaluate compliance checks over a dataset",
		Long:  "Run every enabled check of the dataset catalog against every project and report results, alerts and tasks. Without an argument the dataset named in the config is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := application.WorkspaceRequest{ConfigPath: configPath}
			if len(args) > 0 {
				req.Dataset = args[0]
			}
			for _, c := range checks {
				req.Only = append(req.Only, domain.CheckCode(c))
			}
			if nowFlag != "" {
				now, err := time.Parse(time.RFC3339, nowFlag)
				if err != nil {
					return fmt.Errorf("parsing --now: %w", err)
				}
				req.Now = now.UTC()
			}
			if save {
				workspace, err := workspaceDir(configPath)
				if err != nil {
					return err
				}
				req.SaveTo = workspace
			}

			run, err := newWorkspaceService().Run(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, run); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRun(run))
			}

			if ciMode && run.HasFailures() {
				return fmt.Errorf("%d result(s) failed", run.Totals()[domain.StatusFailed])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", ".", "Workspace directory or config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any result failed")
	cmd.Flags().StringArrayVar(&checks, "check", nil, "Only evaluate this check code (repeatable)")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Reference time for recency checks (RFC 3339)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist results under the workspace")

	return cmd
}

func newWorkspaceService() *application.WorkspaceService {
	return application.NewWorkspaceService(
		config.New(),
		openDataset,
		gitinfo.New(),
		history.New(),
		nil,
	)
}

func openDataset(path string) (domain.SignalSource, error) {
	return dataset.Open(path, nil)
}

// workspaceDir resolves the directory results are stored under: the config
// path itself or the directory of a config file.
func workspaceDir(configPath string) (string, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolving workspace: %w", err)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
