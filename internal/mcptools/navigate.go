package mcptools

import (
	"context"
	"fmt"

	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/window"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// displayHandler returns the handler function for the display_state MCP tool.
func displayHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input DisplayInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DisplayInput) (*mcp.CallToolResult, DisplayOutput, error) {
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.Display(), nil
		})
		return nil, out, err
	}
}

// getEntryHandler returns the handler function for the get_entry MCP tool.
func getEntryHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetEntryInput) (*mcp.CallToolResult, EntryOutput, error) {
		s.mu.Lock()
		e, ok := s.nav.Entry(input.Index)
		s.mu.Unlock()
		if !ok {
			return nil, EntryOutput{}, fmt.Errorf("no entry with index %d", input.Index)
		}
		return nil, EntryOutput{Entry: toEntryResult(e), Paragraphs: append([]string{}, e.Paragraphs...)}, nil
	}
}

// setScaleHandler returns the handler function for the set_scale MCP tool.
func setScaleHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input SetScaleInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetScaleInput) (*mcp.CallToolResult, DisplayOutput, error) {
		scale, err := window.ParseScale(input.Scale)
		if err != nil {
			return nil, DisplayOutput{}, err
		}
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.SetScale(scale), nil
		})
		return nil, out, err
	}
}

// setPageHandler returns the handler function for the set_page MCP tool.
func setPageHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input SetPageInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetPageInput) (*mcp.CallToolResult, DisplayOutput, error) {
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.SetPage(input.Page), nil
		})
		return nil, out, err
	}
}

// advancePageHandler returns the handler function for the advance_page MCP tool.
func advancePageHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input DirectionInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DirectionInput) (*mcp.CallToolResult, DisplayOutput, error) {
		dir, err := navigator.ParseDirection(input.Direction)
		if err != nil {
			return nil, DisplayOutput{}, err
		}
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.AdvancePage(dir), nil
		})
		return nil, out, err
	}
}

// selectEntryHandler returns the handler function for the select_entry MCP tool.
func selectEntryHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input SelectEntryInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SelectEntryInput) (*mcp.CallToolResult, DisplayOutput, error) {
		dir, err := navigator.ParseDirection(input.Direction)
		if err != nil {
			return nil, DisplayOutput{}, err
		}
		index := input.Index
		if index < 0 {
			index = navigator.None
		}
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.SetSelected(index, dir), nil
		})
		return nil, out, err
	}
}

// advanceSelectionHandler returns the handler function for the advance_selection MCP tool.
func advanceSelectionHandler(s *session) func(ctx context.Context, req *mcp.CallToolRequest, input DirectionInput) (*mcp.CallToolResult, DisplayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DirectionInput) (*mcp.CallToolResult, DisplayOutput, error) {
		dir, err := navigator.ParseDirection(input.Direction)
		if err != nil {
			return nil, DisplayOutput{}, err
		}
		out, err := s.do(func(c *navigator.Coordinator) (navigator.DisplayState, error) {
			return c.AdvanceSelection(dir), nil
		})
		return nil, out, err
	}
}
