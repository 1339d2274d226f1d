package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const checksURI = "visionboard://checks"

// registerResources registers all visionboard MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			checksURI,
			"Checks",
			mcplib.WithResourceDescription("Check codes visionboard can evaluate"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecksResource(),
	)
}

func handleChecksResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(listChecks(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling checks: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      checksURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
