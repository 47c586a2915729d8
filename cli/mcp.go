// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"

	"github.com/harperreed/outreach/handlers"
	"github.com/harperreed/outreach/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, s *store.Store, log zerolog.Logger, version string) error {
	log.Info().Str("version", version).Msg("starting outreach MCP server")

	server := handlers.NewServer(s, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
