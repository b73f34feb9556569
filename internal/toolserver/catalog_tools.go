package toolserver

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xolan/tock/internal/service"
)

type listProjectsTool struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func (t *listProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List projects time can be tracked against."),
	)
}

func (t *listProjectsTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.catalog.ListProjects(ctx)
	if err != nil {
		return errorResult(t.logger, "list_projects", err), nil
	}
	return mcp.NewToolResultText(renderProjects(projects)), nil
}

type listTasksTool struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func (t *listTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List tasks, optionally for one project."),
		mcp.WithString("projectId", mcp.Description("Optional project ID")),
	)
}

func (t *listTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := t.catalog.ListTasks(ctx, req.GetString("projectId", ""))
	if err != nil {
		return errorResult(t.logger, "list_tasks", err), nil
	}
	return mcp.NewToolResultText(renderTasks(tasks)), nil
}
