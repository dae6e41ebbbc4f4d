package mcptools

import (
	"context"

	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setFilterHandler returns the handler function for the set_filter MCP tool.
// A rejected change leaves the filter as it was and reports the reason.
func setFilterHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input SetFilterInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetFilterInput) (*mcp.CallToolResult, DisplayOutput, error) {
		p := filter.Patch{
			ActiveTopics:     input.ActiveTopics,
			ToggleTopic:      input.ToggleTopic,
			MaxDetail:        input.MaxDetail,
			IncludeSensitive: input.IncludeSensitive,
		}
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.SetFilter(p)
		})
		return nil, out, err
	}
}
