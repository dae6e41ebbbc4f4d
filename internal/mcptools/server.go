// Package mcptools exposes the navigation coordinator as Model Context
// Protocol tools, so an MCP client can page through and filter the diary.
package mcptools

import (
	"context"
	"sync"

	"github.com/aphreditto/diary/internal/navigator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// session serialises tool calls on the coordinator, which is not safe for
// concurrent use.
type session struct {
	mu  sync.Mutex
	nav *navigator.Coordinator
}

func (s *session) do(fn func(*navigator.Coordinator) (navigator.DisplayState, error)) (DisplayOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := fn(s.nav)
	if err != nil {
		return DisplayOutput{}, err
	}
	return toDisplayOutput(d), nil
}

// NewDiaryMCPServer creates an in-memory MCP server exposing diary tools.
// Returns the server and a client transport for connecting to it.
func NewDiaryMCPServer(nav *navigator.Coordinator) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(nav, "dev")

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the navigation tools registered.
func CreateMCPServer(nav *navigator.Coordinator, version string) *mcp.Server {
	s := &session{nav: nav}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "diary",
		Version: version,
	}, nil)

	// Read tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "display_state",
		Description: "Show the current page of diary entries, the selection and the active filter",
	}, displayHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entry",
		Description: "Read the full text of one diary entry",
	}, getEntryHandler(s))

	// Navigation tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_scale",
		Description: "Switch between week, month and page windows; the selected entry stays in view",
	}, setScaleHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_page",
		Description: "Jump to a page of the current scale",
	}, setPageHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_page",
		Description: "Move one page forward or backward, wrapping at both ends",
	}, advancePageHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_entry",
		Description: "Select an entry by index, or clear the selection with -1",
	}, selectEntryHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "advance_selection",
		Description: "Select the next or previous visible entry",
	}, advanceSelectionHandler(s))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_filter",
		Description: "Change the active topics, detail threshold or nsfw visibility",
	}, setFilterHandler(s))

	return server
}
