package mcptools

import (
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/ui"
)

const previewLength = 100

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toEntryResult(e entry.Entry) EntryResult {
	return EntryResult{
		Index:     e.Index,
		Title:     e.Title,
		Date:      formatTime(e.Date),
		Day:       e.DayOffset,
		Topics:    append([]string{}, e.Topics...),
		Detail:    e.Detail,
		Sensitive: e.Sensitive,
		Preview:   e.Preview(previewLength),
	}
}

func toDisplayOutput(d navigator.DisplayState) DisplayOutput {
	out := DisplayOutput{
		Window: WindowResult{
			Scale:     d.Window.Scale.String(),
			Page:      d.Window.PageNumber,
			MaxPages:  d.Window.MaxPages,
			PageStart: formatTime(d.Window.PageStart),
			PageEnd:   formatTime(d.Window.PageEnd),
			Title:     ui.WindowTitle(d.Window),
		},
		Entries:   make([]EntryResult, len(d.Entries)),
		Selected:  d.Selection.Index,
		Direction: d.Selection.Direction.String(),
		Filter: FilterResult{
			ActiveTopics:     append([]string{}, d.Filter.ActiveTopics...),
			MaxDetail:        d.Filter.MaxDetail,
			IncludeSensitive: d.Filter.IncludeSensitive,
		},
	}
	for i, e := range d.Entries {
		out.Entries[i] = toEntryResult(e)
	}
	return out
}
