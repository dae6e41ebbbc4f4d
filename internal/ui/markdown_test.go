package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/aphreditto/diary/internal/entry"
)

func TestRenderMarkdownWithStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{name: "plain text", input: "Hello world", width: 80, want: []string{"Hello world"}},
		{name: "heading", input: "# Entry 3", width: 80, want: []string{"Entry 3"}},
		{name: "emphasis", input: "This is **bold** and *italic* text", width: 80, want: []string{"bold", "italic"}},
		{name: "small width", input: "This is a longer line of text that should wrap", width: 20, want: []string{"This is a longer"}},
		{name: "zero width falls back", input: "short", width: 0, want: []string{"short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdownWithStyle(tt.input, tt.width, "dark"))
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", 80); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRenderMarkdownStyles(t *testing.T) {
	dark := RenderMarkdownWithStyle("# Test", 80, "dark")
	notty := RenderMarkdownWithStyle("# Test", 80, "notty")
	light := RenderMarkdownWithStyle("# Test", 80, "light")
	if dark == "" || notty == "" || light == "" {
		t.Fatal("expected output for every style")
	}
	if dark == notty {
		t.Error("expected different output for different styles")
	}
}

func TestRenderMarkdownUnknownStyleReturnsContent(t *testing.T) {
	got := RenderMarkdownWithStyle("plain", 80, "/no/such/style.json")
	if got != "plain" {
		t.Errorf("got %q, want content unchanged", got)
	}
}

func TestRendererCached(t *testing.T) {
	a, err := renderer(61, "notty")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := renderer(61, "notty")
	c, _ := renderer(62, "notty")
	if a != b {
		t.Error("expected the same renderer for the same width and style")
	}
	if a == c {
		t.Error("expected a new renderer for a new width")
	}
}

func TestEntryMarkdown(t *testing.T) {
	e := entry.Entry{
		Index:      4,
		Title:      "Entry 4",
		Date:       time.Date(2023, 3, 5, 21, 30, 0, 0, time.UTC),
		Topics:     []string{"hrt", "srs"},
		Detail:     40,
		Sensitive:  true,
		Paragraphs: []string{"First.", "Second."},
	}
	md := EntryMarkdown(e)
	for _, want := range []string{"# Entry 4", "Sunday, March 5, 2023 21:30", "detail 40", "**NSFW**", "First.\n\nSecond."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	e.Paragraphs = nil
	if md := EntryMarkdown(e); !strings.Contains(md, "Nothing was written") {
		t.Errorf("expected placeholder for empty entry:\n%s", md)
	}
}
