package toolserver

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xolan/tock/internal/service"
	"github.com/xolan/tock/internal/timeutil"
)

type summaryTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *summaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_time_summary",
		mcp.WithDescription("Summarize tracked time per project for today, this week or this month (to date)."),
		mcp.WithString("period",
			mcp.Description("Summary window"),
			mcp.Enum(string(timeutil.PeriodToday), string(timeutil.PeriodWeek), string(timeutil.PeriodMonth)),
			mcp.DefaultString(string(timeutil.PeriodToday)),
		),
		mcp.WithString("projectId", mcp.Description("Optional project to restrict the summary to")),
	)
}

func (t *summaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := timeutil.ParsePeriod(req.GetString("period", string(timeutil.PeriodToday)))
	if err != nil {
		return errorResult(t.logger, "get_time_summary", err), nil
	}

	res, err := t.timer.Summary(ctx, period, req.GetString("projectId", ""))
	if err != nil {
		return errorResult(t.logger, "get_time_summary", err), nil
	}
	return mcp.NewToolResultText(renderSummary(res)), nil
}

type updateEntryTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *updateEntryTool) Definition() mcp.Tool {
	return mcp.NewTool("update_time_entry",
		mcp.WithDescription("Edit a time entry. A new duration recomputes the end time from the start time."),
		mcp.WithString("entryId", mcp.Required(), mcp.Description("ID of the entry to edit")),
		mcp.WithString("duration", mcp.Description("New duration")),
		mcp.WithString("notes", mcp.Description("Replacement notes")),
		mcp.WithString("projectId", mcp.Description("New project ID")),
		mcp.WithString("taskId", mcp.Description("New task ID; an empty string clears the task")),
	)
}

func (t *updateEntryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entryID, err := req.RequireString("entryId")
	if err != nil {
		return missingArgument(err), nil
	}

	args := req.GetArguments()
	res, err := t.timer.Update(ctx, service.UpdateInput{
		EntryID:   entryID,
		Duration:  optionalString(args, "duration"),
		Notes:     optionalString(args, "notes"),
		ProjectID: optionalString(args, "projectId"),
		TaskID:    optionalString(args, "taskId"),
	})
	if err != nil {
		return errorResult(t.logger, "update_time_entry", err), nil
	}
	return mcp.NewToolResultText(renderUpdate(res)), nil
}

// optionalString returns the argument when it was supplied as a string.
func optionalString(args map[string]any, key string) *string {
	v, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &v
}

type deleteEntryTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *deleteEntryTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_time_entry",
		mcp.WithDescription("Permanently delete a time entry."),
		mcp.WithString("entryId", mcp.Required(), mcp.Description("ID of the entry to delete")),
	)
}

func (t *deleteEntryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entryID, err := req.RequireString("entryId")
	if err != nil {
		return missingArgument(err), nil
	}

	res, err := t.timer.Delete(ctx, entryID)
	if err != nil {
		return errorResult(t.logger, "delete_time_entry", err), nil
	}
	return mcp.NewToolResultText(renderDelete(res)), nil
}
