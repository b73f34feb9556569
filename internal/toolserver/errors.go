package toolserver

import (
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xolan/tock/internal/entry"
)

// errorResult renders err as a tool error. Unexpected failures are logged
// and reported as internal errors.
func errorResult(logger *slog.Logger, toolName string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, entry.ErrNotFound):
		return mcp.NewToolResultError("Not found: " + err.Error())
	case errors.Is(err, entry.ErrInvalidArgument):
		return mcp.NewToolResultError("Invalid argument: " + err.Error())
	case errors.Is(err, entry.ErrConflict):
		logger.Warn("tool lost a concurrent write", "tool", toolName, "error", err)
		return mcp.NewToolResultError("Conflict: " + err.Error() + "; check get_timer_status and retry")
	default:
		logger.Error("tool failed", "tool", toolName, "error", err)
		return mcp.NewToolResultError("Internal error: " + err.Error())
	}
}

// missingArgument reports a required argument that was not supplied.
func missingArgument(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Invalid argument: " + err.Error())
}
