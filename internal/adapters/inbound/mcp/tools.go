package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/visionboard/internal/adapters/outbound/config"
	"github.com/openkraft/visionboard/internal/adapters/outbound/dataset"
	"github.com/openkraft/visionboard/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/visionboard/internal/adapters/outbound/history"
	"github.com/openkraft/visionboard/internal/adapters/outbound/tui"
	"github.com/openkraft/visionboard/internal/application"
	"github.com/openkraft/visionboard/internal/domain"
	"github.com/openkraft/visionboard/internal/domain/validator"
)

// registerTools registers all visionboard MCP tools on the given server.
func registerTools(s *server.MCPServer, workspacePath string) {
	// 1. visionboard_evaluate
	s.AddTool(
		mcplib.NewTool("visionboard_evaluate",
			mcplib.WithDescription("Evaluate the compliance checks of a dataset and return results, alerts and tasks as JSON"),
			mcplib.WithString("dataset",
				mcplib.Description("Dataset file to evaluate (defaults to the dataset named in the workspace config)"),
			),
			mcplib.WithString("check",
				mcplib.Description("Only evaluate this check code"),
			),
		),
		handleEvaluate(workspacePath),
	)

	// 2. visionboard_list_checks
	s.AddTool(
		mcplib.NewTool("visionboard_list_checks",
			mcplib.WithDescription("List the check codes visionboard can evaluate"),
		),
		handleListChecks(),
	)
}

func newWorkspaceService() *application.WorkspaceService {
	return application.NewWorkspaceService(
		config.New(),
		func(path string) (domain.SignalSource, error) { return dataset.Open(path, nil) },
		gitinfo.New(),
		history.New(),
		nil,
	)
}

func handleEvaluate(workspacePath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req := application.WorkspaceRequest{ConfigPath: workspacePath}
		req.Dataset = workspaceDataset(workspacePath, request.GetArguments())
		if check, _ := request.GetArguments()["check"].(string); check != "" {
			req.Only = []domain.CheckCode{domain.CheckCode(check)}
		}

		run, err := newWorkspaceService().Run(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		return jsonResult(run)
	}
}

// workspaceDataset resolves a relative dataset argument against the workspace,
// not the server's working directory.
func workspaceDataset(workspacePath string, args map[string]any) string {
	path, _ := args["dataset"].(string)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspacePath, path)
}

type checkInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func listChecks() []checkInfo {
	codes := validator.Codes()
	infos := make([]checkInfo, 0, len(codes))
	for _, code := range codes {
		infos = append(infos, checkInfo{Code: string(code), Name: tui.DisplayName(code)})
	}
	return infos
}

func handleListChecks() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(listChecks())
	}
}

// jsonResult marshals v to indented JSON and wraps it in a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool error result the client can show.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
