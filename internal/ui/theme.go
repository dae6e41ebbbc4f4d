package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aphreditto/diary/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

const defaultPreset = "default-dark"

// palette lists colors in Theme field order: primary, secondary, accent,
// muted, danger, background.
func palette(markdownStyle string, colors ...string) Theme {
	c := make([]lipgloss.Color, len(colors))
	for i, s := range colors {
		c[i] = lipgloss.Color(s)
	}
	return Theme{
		Primary:       c[0],
		Secondary:     c[1],
		Accent:        c[2],
		Muted:         c[3],
		Danger:        c[4],
		Background:    c[5],
		MarkdownStyle: markdownStyle,
	}
}

var presets = map[string]Theme{
	"default-dark":     palette("dark", "15", "243", "33", "241", "9", "235"),
	"default-light":    palette("light", "0", "240", "27", "245", "1", "254"),
	"dracula":          palette("dark", "#F8F8F2", "#6272A4", "#BD93F9", "#6272A4", "#FF5555", "#282A36"),
	"ayu-dark":         palette("dark", "#BFBDB6", "#565B66", "#E6B450", "#565B66", "#D95757", "#0D1017"),
	"ayu-light":        palette("light", "#575F66", "#8A9199", "#F2AE49", "#8A9199", "#E65050", "#FAFAFA"),
	"catppuccin-mocha": palette("dark", "#CDD6F4", "#585B70", "#CBA6F7", "#6C7086", "#F38BA8", "#1E1E2E"),
	"catppuccin-latte": palette("light", "#4C4F69", "#9CA0B0", "#8839EF", "#9CA0B0", "#D20F39", "#EFF1F5"),
	"gruvbox-dark":     palette("dark", "#EBDBB2", "#665C54", "#FABD2F", "#928374", "#FB4934", "#282828"),
	"gruvbox-light":    palette("light", "#3C3836", "#A89984", "#D79921", "#928374", "#CC241D", "#FBF1C7"),
}

// ResolveTheme starts from the configured preset (default-dark when unknown)
// and applies any color overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	overrides := []struct {
		value  string
		target *lipgloss.Color
	}{
		{cfg.Primary, &theme.Primary},
		{cfg.Secondary, &theme.Secondary},
		{cfg.Accent, &theme.Accent},
		{cfg.Muted, &theme.Muted},
		{cfg.Danger, &theme.Danger},
		{cfg.Background, &theme.Background},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = lipgloss.Color(o.value)
		}
	}
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}
	return theme
}

// PresetNames lists the built-in presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// HelpStyle is used for the footer and the help overlay.
func (t Theme) HelpStyle() lipgloss.Style { return t.base().Foreground(t.Muted) }

func (t Theme) HeaderStyle() lipgloss.Style { return t.base().Bold(true).Foreground(t.Primary) }

func (t Theme) AccentStyle() lipgloss.Style { return t.base().Foreground(t.Accent) }

func (t Theme) DangerStyle() lipgloss.Style { return t.base().Foreground(t.Danger) }

func (t Theme) ViewPaneStyle() lipgloss.Style { return t.base().Foreground(t.Primary) }

// BorderStyle frames the entry drawer.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.ViewPaneStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background)
}

// CardStyle returns the style for an entry card. The selected entry is
// accented and bold, the card under the cursor uses the header style.
func (t Theme) CardStyle(selected, focused bool) lipgloss.Style {
	switch {
	case selected:
		return t.AccentStyle().Bold(true)
	case focused:
		return t.HeaderStyle()
	}
	return t.ViewPaneStyle()
}

// bgEscapeCode is the raw SGR sequence selecting the background color,
// as 24-bit for hex colors and 256-color otherwise.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	var r, g, b int
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
		}
	}
	return "\x1b[48;5;" + s + "m"
}

// eraseEOL fills the rest of the terminal line with the background even
// when lipgloss under-measures a line.
func (t Theme) eraseEOL() string {
	return t.bgEscapeCode() + "\x1b[K"
}

// PaintScreen pads content to exactly termHeight lines of termWidth cells on
// the theme background, centering it when contentWidth is narrower.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	fill := func(n int) string {
		if n <= 0 {
			return ""
		}
		return t.base().Render(strings.Repeat(" ", n))
	}
	left := 0
	if contentWidth > 0 && contentWidth < termWidth {
		left = (termWidth - contentWidth) / 2
	}
	eol := t.eraseEOL()

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		right := termWidth - left - lipgloss.Width(line)
		lines[i] = fill(left) + line + fill(right) + eol
	}
	for len(lines) < termHeight {
		lines = append(lines, fill(termWidth)+eol)
	}
	return strings.Join(lines[:termHeight], "\n")
}

// ClearLineEnds erases to the end of every line with the theme background.
func (t Theme) ClearLineEnds(content string) string {
	eol := t.eraseEOL()
	return strings.ReplaceAll(content, "\n", eol+"\n") + eol
}
