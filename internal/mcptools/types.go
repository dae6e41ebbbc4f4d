package mcptools

// DisplayInput is the input schema for the display_state MCP tool.
type DisplayInput struct{}

// SetScaleInput is the input schema for the set_scale MCP tool.
type SetScaleInput struct {
	Scale string `json:"scale" jsonschema-description:"Window scale: week, month or page"`
}

// SetPageInput is the input schema for the set_page MCP tool.
type SetPageInput struct {
	Page int `json:"page" jsonschema-description:"1-based page number; invalid pages are repaired"`
}

// DirectionInput is the input schema for advance_page and advance_selection.
type DirectionInput struct {
	Direction string `json:"direction,omitempty" jsonschema-description:"forward (default) or backward"`
}

// SelectEntryInput is the input schema for the select_entry MCP tool.
type SelectEntryInput struct {
	Index     int    `json:"index" jsonschema-description:"Entry index to select; -1 clears the selection"`
	Direction string `json:"direction,omitempty" jsonschema-description:"Repair direction if the entry is filtered out: forward (default) or backward"`
}

// SetFilterInput is the input schema for the set_filter MCP tool.
// Fields left out keep their current value.
type SetFilterInput struct {
	ActiveTopics     []string `json:"active_topics,omitempty" jsonschema-description:"Replace the active topic set"`
	ToggleTopic      string   `json:"toggle_topic,omitempty" jsonschema-description:"Flip a single topic"`
	MaxDetail        *float64 `json:"max_detail,omitempty" jsonschema-description:"Detail threshold between 1 and 100"`
	IncludeSensitive *bool    `json:"include_nsfw,omitempty" jsonschema-description:"Show entries marked nsfw"`
}

// GetEntryInput is the input schema for the get_entry MCP tool.
type GetEntryInput struct {
	Index int `json:"index" jsonschema-description:"Entry index"`
}

// DisplayOutput is the output schema of every navigation tool.
type DisplayOutput struct {
	Window    WindowResult  `json:"window"`
	Entries   []EntryResult `json:"entries"`
	Selected  int           `json:"selected"`
	Direction string        `json:"direction"`
	Filter    FilterResult  `json:"filter"`
}

// WindowResult describes the displayed page.
type WindowResult struct {
	Scale     string `json:"scale"`
	Page      int    `json:"page"`
	MaxPages  int    `json:"max_pages"`
	PageStart string `json:"page_start,omitempty"`
	PageEnd   string `json:"page_end,omitempty"`
	Title     string `json:"title"`
}

// FilterResult is the active filter.
type FilterResult struct {
	ActiveTopics     []string `json:"active_topics"`
	MaxDetail        float64  `json:"max_detail"`
	IncludeSensitive bool     `json:"include_nsfw"`
}

// EntryResult is the common output format for entries.
type EntryResult struct {
	Index     int      `json:"index"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Day       int      `json:"day"`
	Topics    []string `json:"topics"`
	Detail    float64  `json:"detail"`
	Sensitive bool     `json:"nsfw"`
	Preview   string   `json:"preview"`
}

// EntryOutput is the output schema for the get_entry MCP tool.
type EntryOutput struct {
	Entry      EntryResult `json:"entry"`
	Paragraphs []string    `json:"paragraphs"`
}
