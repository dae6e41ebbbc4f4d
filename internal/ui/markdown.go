package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	defaultWrapWidth = 80
	defaultStyle     = "dark"
)

type rendererKey struct {
	width int
	style string
}

// renderers caches glamour renderers; building one parses the whole style
// sheet, and the browser re-renders on every selection change.
var renderers = struct {
	sync.Mutex
	byKey map[rendererKey]*glamour.TermRenderer
}{byKey: map[rendererKey]*glamour.TermRenderer{}}

func renderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultWrapWidth
	}
	if style == "" {
		style = defaultStyle
	}
	k := rendererKey{width: width, style: style}

	renderers.Lock()
	defer renderers.Unlock()
	if r, ok := renderers.byKey[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers.byKey[k] = r
	return r, nil
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour style.
// The content is returned unchanged when rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	r, err := renderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown with the default dark style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, defaultStyle)
}
