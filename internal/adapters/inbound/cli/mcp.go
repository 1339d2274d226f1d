package cli

import (
	mcpadapter "github.com/openkraft/visionboard/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the visionboard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var workspacePath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start visionboard MCP server (stdio)",
		Long:  "Start the visionboard MCP server using stdio transport. This allows AI assistants to evaluate datasets and list the available checks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if workspacePath == "" {
				workspacePath = "."
			}
			s := mcpadapter.NewVisionboardMCPServer(workspacePath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&workspacePath, "path", "", "Workspace path (defaults to current working directory)")

	return cmd
}
