package cmd

import (
	"github.com/aphreditto/diary/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpPersist bool

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the diary browser
over stdio transport, so an MCP client can page through entries the same way
the interactive browser does.

Available tools:
  - display_state: Current page, selection and filter
  - get_entry: Full text of one entry
  - set_scale, set_page, advance_page: Move the window
  - select_entry, advance_selection: Move the selection
  - set_filter: Change topics, detail threshold or nsfw visibility

With --persist, changes are saved like in the browser.

Example usage in a client config:
  {
    "mcpServers": {
      "diary": {
        "command": "/path/to/diary",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context(), mcpPersist)
		if err != nil {
			return err
		}
		defer sess.Close()

		server := mcptools.CreateMCPServer(sess.nav, version)

		// Logs go to stderr; stdout is reserved for the MCP protocol.
		logger.Info("starting MCP server", "transport", "stdio", "source", appConfig.Source, "entries", len(sess.nav.Entries()))

		// Blocks until the transport is closed.
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeCmd.Flags().BoolVar(&mcpPersist, "persist", false, "save navigation and filter changes")
	rootCmd.AddCommand(mcpServeCmd)
}
