package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewVisionboardMCPServer creates a new MCP server with all visionboard tools
// and resources registered. The workspacePath is the directory holding the
// visionboard config.
func NewVisionboardMCPServer(workspacePath string) *server.MCPServer {
	s := server.NewMCPServer(
		"visionboard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workspacePath)
	registerResources(s)

	return s
}
