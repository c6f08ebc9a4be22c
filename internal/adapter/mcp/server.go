package mcp

import (
	"log/slog"

	"github.com/lodestone-labs/relnav/internal/adapter/profiles"
	"github.com/lodestone-labs/relnav/internal/core/port"
	"github.com/lodestone-labs/relnav/internal/core/service"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"
)

// NewServer creates an MCPServer with tools and logging hooks. The profiles
// registry may be nil when no profiles file is configured; connect then
// requires an explicit URL.
func NewServer(version string, sessions *service.SessionManager, registry *profiles.Registry, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithHooks(ToolCallHooks(logger, tracer, inst)),
	)

	RegisterTools(s, sessions, registry)

	return s
}
