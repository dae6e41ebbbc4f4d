package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/window"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02 15:04"

// WindowTitle describes the displayed page, e.g. "Week 2 of 5 · Jan 8 – Jan 14, 2023".
func WindowTitle(st window.State) string {
	if st.MaxPages == 0 {
		return "No entries match the current filter"
	}
	label := map[window.Scale]string{window.Week: "Week", window.Month: "Month", window.Page: "Page"}[st.Scale]
	var span string
	switch st.Scale {
	case window.Week:
		span = fmt.Sprintf("%s – %s", st.PageStart.Format("Jan 2"), st.PageEnd.Format("Jan 2, 2006"))
	case window.Month:
		span = st.PageStart.Format("January 2006")
	default:
		if !st.Empty() {
			span = fmt.Sprintf("%s – %s", st.PageStart.Format("Jan 2, 2006"), st.PageEnd.Format("Jan 2, 2006"))
		}
	}
	title := fmt.Sprintf("%s %d of %d", label, st.PageNumber, st.MaxPages)
	if span != "" {
		title += " · " + span
	}
	return title
}

// TopicLabels maps topic keys to their display labels, keeping unknown keys.
func TopicLabels(keys []string) []string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = k
		for _, t := range entry.Topics {
			if t.Key == k {
				labels[i] = t.Label
				break
			}
		}
	}
	return labels
}

// EntryMarkdown renders an entry as a Markdown document for glamour.
func EntryMarkdown(e entry.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Title)
	fmt.Fprintf(&b, "*%s* · detail %g", e.Date.Format("Monday, January 2, 2006 15:04"), e.Detail)
	if e.Sensitive {
		b.WriteString(" · **NSFW**")
	}
	b.WriteString("\n\n")
	if len(e.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n\n", strings.Join(TopicLabels(e.Topics), ", "))
	}
	if len(e.Paragraphs) == 0 {
		b.WriteString("_Nothing was written for this entry._\n")
		return b.String()
	}
	b.WriteString(strings.Join(e.Paragraphs, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

// FormatEntryFull formats a full entry display with metadata header.
// The markdownStyle parameter controls glamour rendering (e.g. "dark", "light").
func FormatEntryFull(w io.Writer, e entry.Entry, width int, markdownStyle string) {
	fmt.Fprintf(w, "Entry: %d\n", e.Index)
	fmt.Fprintf(w, "Date: %s (day %d)\n", e.Date.Format(dateLayout), e.DayOffset)
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderMarkdownWithStyle(EntryMarkdown(e), width, markdownStyle))
}

// FormatPage prints the displayed page as a table.
func FormatPage(w io.Writer, d navigator.DisplayState) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(w, bold.Sprint(WindowTitle(d.Window)))
	if len(d.Entries) == 0 {
		if d.Window.MaxPages > 0 {
			fmt.Fprintln(w, "Nothing on this page.")
		}
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = false
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Date"), bold.Sprint("Topics"), bold.Sprint("Preview"))
	for _, e := range d.Entries {
		marker := " "
		if e.Index == d.Selection.Index {
			marker = "*"
		}
		preview := e.Preview(previewLength)
		if e.Sensitive {
			preview = faint.Sprint("[nsfw] ") + preview
		}
		tbl.AddRow(
			fmt.Sprintf("%s%d", marker, e.Index),
			e.Date.Format(dateLayout),
			strings.Join(e.Topics, ","),
			preview,
		)
	}
	tbl.RightAlign(0)
	fmt.Fprintln(w, tbl)
}

// FormatTopics prints the topic catalogue with the active state and the
// number of entries carrying each topic.
func FormatTopics(w io.Writer, c filter.Config, entries []entry.Entry) {
	bold := color.New(color.Bold)
	on := color.New(color.FgGreen)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Topic"), bold.Sprint("Active"), bold.Sprint("Entries"))
	for _, t := range entry.Topics {
		count := 0
		for i := range entries {
			if entries[i].HasTopic(t.Key) {
				count++
			}
		}
		active := "no"
		if c.IsActive(t.Key) {
			active = on.Sprint("yes")
		}
		tbl.AddRow(t.Key, t.Label, active, count)
	}
	tbl.RightAlign(3)
	fmt.Fprintln(w, tbl)
	fmt.Fprintf(w, "\ndetail ≤ %g, nsfw included: %t\n", c.MaxDetail, c.IncludeSensitive)
}

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes any value as YAML to the writer.
func FormatYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// EntrySummary is the JSON/YAML representation of an entry in list output.
type EntrySummary struct {
	Index     int       `json:"index" yaml:"index"`
	Title     string    `json:"title" yaml:"title"`
	Date      time.Time `json:"date" yaml:"date"`
	DayOffset int       `json:"day_offset" yaml:"day_offset"`
	Topics    []string  `json:"topics" yaml:"topics"`
	Detail    float64   `json:"detail" yaml:"detail"`
	Sensitive bool      `json:"nsfw" yaml:"nsfw"`
	Preview   string    `json:"preview" yaml:"preview"`
}

// PageSummary is the JSON/YAML representation of a displayed page.
type PageSummary struct {
	Scale     string         `json:"scale" yaml:"scale"`
	Page      int            `json:"page" yaml:"page"`
	MaxPages  int            `json:"max_pages" yaml:"max_pages"`
	PageStart *time.Time     `json:"page_start,omitempty" yaml:"page_start,omitempty"`
	PageEnd   *time.Time     `json:"page_end,omitempty" yaml:"page_end,omitempty"`
	Selected  *int           `json:"selected,omitempty" yaml:"selected,omitempty"`
	Filter    filter.Config  `json:"filter" yaml:"filter"`
	Entries   []EntrySummary `json:"entries" yaml:"entries"`
}

// ToSummaries converts entries to summary format for list output.
func ToSummaries(entries []entry.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			Index:     e.Index,
			Title:     e.Title,
			Date:      e.Date,
			DayOffset: e.DayOffset,
			Topics:    e.Topics,
			Detail:    e.Detail,
			Sensitive: e.Sensitive,
			Preview:   e.Preview(previewLength),
		}
	}
	return summaries
}

// ToPageSummary converts a display state for list output.
func ToPageSummary(d navigator.DisplayState) PageSummary {
	s := PageSummary{
		Scale:    d.Window.Scale.String(),
		Page:     d.Window.PageNumber,
		MaxPages: d.Window.MaxPages,
		Filter:   d.Filter,
		Entries:  ToSummaries(d.Entries),
	}
	if !d.Window.PageStart.IsZero() {
		start, end := d.Window.PageStart, d.Window.PageEnd
		s.PageStart, s.PageEnd = &start, &end
	}
	if d.Selection.Selected() {
		idx := d.Selection.Index
		s.Selected = &idx
	}
	return s
}
