package toolserver

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xolan/tock/internal/service"
)

type startTimerTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *startTimerTool) Definition() mcp.Tool {
	return mcp.NewTool("start_timer",
		mcp.WithDescription("Start a timer for a project. A timer that is already running is stopped first."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("ID of the project to track")),
		mcp.WithString("taskId", mcp.Description("Optional task ID")),
		mcp.WithString("subtaskId", mcp.Description("Optional subtask ID")),
		mcp.WithString("notes", mcp.Description("Optional notes for the entry")),
	)
}

func (t *startTimerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("projectId")
	if err != nil {
		return missingArgument(err), nil
	}

	res, err := t.timer.Start(ctx, service.StartInput{
		ProjectID: projectID,
		TaskID:    req.GetString("taskId", ""),
		SubtaskID: req.GetString("subtaskId", ""),
		Notes:     req.GetString("notes", ""),
	})
	if err != nil {
		return errorResult(t.logger, "start_timer", err), nil
	}
	return mcp.NewToolResultText(renderStart(res)), nil
}

type stopTimerTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *stopTimerTool) Definition() mcp.Tool {
	return mcp.NewTool("stop_timer",
		mcp.WithDescription("Stop the running timer. Notes are appended to the entry's existing notes."),
		mcp.WithString("notes", mcp.Description("Optional notes to append")),
	)
}

func (t *stopTimerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.timer.Stop(ctx, req.GetString("notes", ""))
	if err != nil {
		return errorResult(t.logger, "stop_timer", err), nil
	}
	return mcp.NewToolResultText(renderStop(res)), nil
}

type timerStatusTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *timerStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get_timer_status",
		mcp.WithDescription("Show the running timer, if any, with its elapsed time."),
	)
}

func (t *timerStatusTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := t.timer.Status(ctx)
	if err != nil {
		return errorResult(t.logger, "get_timer_status", err), nil
	}
	return mcp.NewToolResultText(renderStatus(st)), nil
}

type logTimeTool struct {
	timer  *service.TimerService
	logger *slog.Logger
}

func (t *logTimeTool) Definition() mcp.Tool {
	return mcp.NewTool("log_time",
		mcp.WithDescription("Log time that was already spent. Does not affect the running timer."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("ID of the project")),
		mcp.WithString("taskId", mcp.Description("Optional task ID")),
		mcp.WithString("subtaskId", mcp.Description("Optional subtask ID")),
		mcp.WithString("duration", mcp.Required(),
			mcp.Description(`Time spent, e.g. "2h 30m", "90m", "1.5h", "1:30" or "90"`)),
		mcp.WithString("notes", mcp.Description("Optional notes")),
		mcp.WithString("date", mcp.Description("Optional day in YYYY-MM-DD format; the entry starts at 09:00 that day")),
	)
}

func (t *logTimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("projectId")
	if err != nil {
		return missingArgument(err), nil
	}
	duration, err := req.RequireString("duration")
	if err != nil {
		return missingArgument(err), nil
	}

	res, err := t.timer.Log(ctx, service.LogInput{
		ProjectID: projectID,
		TaskID:    req.GetString("taskId", ""),
		SubtaskID: req.GetString("subtaskId", ""),
		Duration:  duration,
		Notes:     req.GetString("notes", ""),
		Date:      req.GetString("date", ""),
	})
	if err != nil {
		return errorResult(t.logger, "log_time", err), nil
	}
	return mcp.NewToolResultText(renderLog(res)), nil
}
