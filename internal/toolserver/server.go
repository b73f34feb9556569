// Package toolserver exposes the timer engine as MCP tools.
// Every tool answers with a text payload; failures are rendered as prose
// with the error flag set and never surface as protocol errors.
package toolserver

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xolan/tock/internal/service"
)

// Name is the server name announced to clients
const Name = "tock"

// tool is one registered MCP tool.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates the MCP server with every tool registered.
func New(svc *service.Services, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("component", "toolserver")

	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, t := range tools(svc, logger) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// tools returns the tool set in registration order.
func tools(svc *service.Services, logger *slog.Logger) []tool {
	return []tool{
		&startTimerTool{timer: svc.Timer, logger: logger},
		&stopTimerTool{timer: svc.Timer, logger: logger},
		&timerStatusTool{timer: svc.Timer, logger: logger},
		&logTimeTool{timer: svc.Timer, logger: logger},
		&summaryTool{timer: svc.Timer, logger: logger},
		&updateEntryTool{timer: svc.Timer, logger: logger},
		&deleteEntryTool{timer: svc.Timer, logger: logger},
		&listProjectsTool{catalog: svc.Catalog, logger: logger},
		&listTasksTool{catalog: svc.Catalog, logger: logger},
	}
}

// Serve runs the server over stdio-style streams until ctx is done or in closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

const instructions = `tock tracks working time against projects and tasks.
Only one timer runs at a time: starting a timer stops the running one.
Use log_time for work that already happened. Durations accept "2h 30m", "90m", "1.5h", "1:30" or a bare number of minutes.`
