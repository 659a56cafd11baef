package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("gymlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("gymlog parses a personal exercise log. Pass the whole log text to a tool; the first malformed line fails the call with its line and column."),
	)

	h := &handlers{log: log}

	s.AddTools(
		server.ServerTool{Tool: toolParseExerciseLog, Handler: h.parseExerciseLog},
		server.ServerTool{Tool: toolSummarizeExerciseLog, Handler: h.summarizeExerciseLog},
	)

	s.AddResources(
		server.ServerResource{Resource: resLogFormat, Handler: h.logFormat},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	log *slog.Logger
}

// --- Resource definitions ---

var resLogFormat = mcp.NewResource(
	"gymlog://format",
	"Exercise Log Format",
	mcp.WithResourceDescription("Grammar of the exercise log with an example line"),
	mcp.WithMIMEType("text/plain"),
)
