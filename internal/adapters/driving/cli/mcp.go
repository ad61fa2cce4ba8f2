package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/mcp"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server opens the current project and exposes its annotations, hierarchy
and pages as tools and resources. Changes made through the tools, such as
page moves and visibility toggles, apply to the open session.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  plancanvas mcp serve --project smith-kitchen

  # HTTP mode (for MCP Inspector, remote access)
  plancanvas mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "plancanvas": {
        "command": "/path/to/plancanvas",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	return withSession(cmd, nil, nil, func(session driving.Session) error {
		server, err := mcp.NewServer(&mcp.Ports{Session: session})
		if err != nil {
			return err
		}

		ctx := commandContext(cmd)
		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}

		return server.Run(ctx)
	})
}
