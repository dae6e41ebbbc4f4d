package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/window"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// detailStep is how far +/- move the detail threshold.
const detailStep = 5

// previewLength is the card preview length in runes at page scale.
const previewLength = 100

// Navigator is the navigation surface the browser drives.
type Navigator interface {
	Display() navigator.DisplayState
	Entry(index int) (entry.Entry, bool)
	SetScale(scale window.Scale) navigator.DisplayState
	SetFilter(p filter.Patch) (navigator.DisplayState, error)
	ToggleTopic(topic string) (navigator.DisplayState, bool)
	SetSelected(index int, dir navigator.Direction) navigator.DisplayState
	SetPage(n int) navigator.DisplayState
	AdvancePage(dir navigator.Direction) navigator.DisplayState
	AdvanceSelection(dir navigator.Direction) navigator.DisplayState
}

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth int       // maximum viewport width (0 = no limit)
	Theme    Theme     // resolved theme
	Epoch    time.Time // day 0 for "Day N"/"Week N" labels; zero = first entry's day
}

// browserModel is the Bubble Tea model for the windowed entry browser.
type browserModel struct {
	nav     Navigator
	cfg     TUIConfig
	keys    keyMap
	help    help.Model
	display navigator.DisplayState
	cursor  int // position in display.Entries
	// Entry drawer
	drawer    viewport.Model
	drawerFor int // entry index rendered into drawer, navigator.None if closed
	// Go-to-page input
	pageInput       textinput.Model
	pageInputActive bool
	helpActive      bool
	notice          string
	// Common
	width  int
	height int
	ready  bool
}

func newBrowserModel(nav Navigator, cfg TUIConfig) browserModel {
	if cfg.Epoch.IsZero() {
		if first, ok := nav.Entry(0); ok {
			y, m, d := first.Date.Date()
			cfg.Epoch = time.Date(y, m, d, 0, 0, 0, 0, first.Date.Location())
		}
	}

	h := help.New()
	h.Styles.ShortKey = cfg.Theme.AccentStyle()
	h.Styles.ShortDesc = cfg.Theme.HelpStyle()
	h.Styles.ShortSeparator = cfg.Theme.HelpStyle()
	h.Styles.FullKey = cfg.Theme.AccentStyle()
	h.Styles.FullDesc = cfg.Theme.HelpStyle()
	h.Styles.FullSeparator = cfg.Theme.HelpStyle()

	m := browserModel{
		nav:       nav,
		cfg:       cfg,
		keys:      defaultKeyMap(),
		help:      h,
		drawerFor: navigator.None,
	}
	m.refresh(nav.Display())
	return m
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

// refresh adopts a new display state and keeps the cursor and drawer in step.
func (m *browserModel) refresh(d navigator.DisplayState) {
	m.display = d
	if _, ok := d.SelectedEntry(); ok {
		for i, e := range d.Entries {
			if e.Index == d.Selection.Index {
				m.cursor = i
			}
		}
	}
	if m.cursor >= len(d.Entries) {
		m.cursor = max(len(d.Entries)-1, 0)
	}
	m.syncDrawer()
}

func (m *browserModel) syncDrawer() {
	sel, ok := m.display.SelectedEntry()
	if !ok {
		m.drawerFor = navigator.None
		return
	}
	if !m.ready || sel.Index == m.drawerFor {
		return
	}
	m.drawer.SetContent(RenderMarkdownWithStyle(EntryMarkdown(sel), m.contentWidth()-4, m.cfg.Theme.MarkdownStyle))
	m.drawer.GotoTop()
	m.drawerFor = sel.Index
}

func (m browserModel) drawerHeight() int {
	return max(m.height/3, 3)
}

// contentWidth returns the effective content width, respecting MaxWidth configuration.
func (m *browserModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = m.contentWidth()
		m.drawer = viewport.New(m.contentWidth()-2, m.drawerHeight())
		m.drawerFor = navigator.None
		m.syncDrawer()
		return m, nil

	case tea.KeyMsg:
		if m.pageInputActive {
			return m.updatePageInput(msg)
		}
		if m.helpActive {
			if key.Matches(msg, m.keys.Help, m.keys.Clear) {
				m.helpActive = false
			}
			return m, nil
		}
		m.notice = ""
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m browserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpActive = true
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor = 0
		m.refresh(m.nav.AdvancePage(navigator.Backward))
	case key.Matches(msg, m.keys.NextPage):
		m.cursor = 0
		m.refresh(m.nav.AdvancePage(navigator.Forward))
	case key.Matches(msg, m.keys.PrevEntry):
		m.refresh(m.nav.AdvanceSelection(navigator.Backward))
	case key.Matches(msg, m.keys.NextEntry):
		m.refresh(m.nav.AdvanceSelection(navigator.Forward))
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.display.Entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCard()
	case key.Matches(msg, m.keys.Clear):
		if m.display.Selection.Selected() {
			m.refresh(m.nav.SetSelected(navigator.None, m.display.Selection.Direction))
		}
	case key.Matches(msg, m.keys.Week):
		m.refresh(m.nav.SetScale(window.Week))
	case key.Matches(msg, m.keys.Month):
		m.refresh(m.nav.SetScale(window.Month))
	case key.Matches(msg, m.keys.Pages):
		m.refresh(m.nav.SetScale(window.Page))
	case key.Matches(msg, m.keys.Topic):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(entry.Topics) {
			d, ok := m.nav.ToggleTopic(entry.Topics[i].Key)
			if !ok {
				m.notice = "At least one topic must stay selected."
			}
			m.refresh(d)
		}
	case key.Matches(msg, m.keys.MoreDetail):
		m.adjustDetail(detailStep)
	case key.Matches(msg, m.keys.LessDetail):
		m.adjustDetail(-detailStep)
	case key.Matches(msg, m.keys.Sensitive):
		include := !m.display.Filter.IncludeSensitive
		d, err := m.nav.SetFilter(filter.Patch{IncludeSensitive: &include})
		if err != nil {
			m.notice = err.Error()
		}
		m.refresh(d)
	case key.Matches(msg, m.keys.GoToPage):
		return m.startPageInput()
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		if m.drawerFor != navigator.None {
			var cmd tea.Cmd
			m.drawer, cmd = m.drawer.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// toggleCard opens the card under the cursor, or closes it when it is
// already the selected entry.
func (m *browserModel) toggleCard() {
	if len(m.display.Entries) == 0 {
		return
	}
	e := m.display.Entries[m.cursor]
	sel := m.display.Selection
	if sel.Index == e.Index {
		m.refresh(m.nav.SetSelected(navigator.None, sel.Direction))
		return
	}
	dir := navigator.Forward
	if sel.Selected() && e.Index < sel.Index {
		dir = navigator.Backward
	}
	m.refresh(m.nav.SetSelected(e.Index, dir))
}

func (m *browserModel) adjustDetail(delta float64) {
	next := m.display.Filter.MaxDetail + delta
	next = min(max(next, filter.MinDetail), filter.MaxDetail)
	if next == m.display.Filter.MaxDetail {
		return
	}
	d, err := m.nav.SetFilter(filter.Patch{MaxDetail: &next})
	if err != nil {
		m.notice = err.Error()
	}
	m.refresh(d)
}

func (m browserModel) startPageInput() (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Prompt = "go to page: "
	ti.Placeholder = fmt.Sprintf("1-%d", m.display.Window.MaxPages)
	ti.CharLimit = 6
	ti.Width = 12
	ti.PromptStyle = m.cfg.Theme.AccentStyle()
	ti.Focus()
	m.pageInput = ti
	m.pageInputActive = true
	return m, textinput.Blink
}

func (m browserModel) updatePageInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.pageInputActive = false
		return m, nil
	case tea.KeyEnter:
		m.pageInputActive = false
		raw := strings.TrimSpace(m.pageInput.Value())
		n, err := strconv.Atoi(raw)
		if err != nil {
			m.notice = fmt.Sprintf("%q is not a page number.", raw)
			return m, nil
		}
		m.cursor = 0
		m.refresh(m.nav.SetPage(n))
		return m, nil
	}

	var cmd tea.Cmd
	m.pageInput, cmd = m.pageInput.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}
	if m.helpActive {
		return m.cfg.Theme.ClearLineEnds(m.helpOverlay())
	}

	cw := m.contentWidth()
	sections := []string{
		m.cfg.Theme.HeaderStyle().Width(cw).Render(m.headerLine()),
		m.topicBar(cw),
		"",
		m.body(cw),
	}

	if sel, ok := m.display.SelectedEntry(); ok && m.drawerFor == sel.Index {
		title := m.cfg.Theme.AccentStyle().Render(fmt.Sprintf("%s · %s", sel.Title, sel.Date.Format("Mon Jan 2 2006 15:04")))
		pane := m.cfg.Theme.BorderStyle().Width(cw - 2).Render(title + "\n" + m.drawer.View())
		sections = append(sections, pane)
	}

	switch {
	case m.pageInputActive:
		sections = append(sections, m.pageInput.View())
	case m.notice != "":
		sections = append(sections, m.cfg.Theme.DangerStyle().Width(cw).Render(m.notice))
	}
	sections = append(sections, m.help.View(m.keys))

	return m.cfg.Theme.PaintScreen(strings.Join(sections, "\n"), m.width, m.height, cw)
}

func (m browserModel) headerLine() string {
	line := WindowTitle(m.display.Window)
	if e, ok := m.display.SelectedEntry(); ok {
		line += fmt.Sprintf(" · day %d", entry.DayOffset(e.Date, m.cfg.Epoch))
	}
	return line
}

func (m browserModel) topicBar(width int) string {
	active := m.cfg.Theme.AccentStyle()
	inactive := m.cfg.Theme.HelpStyle()

	var parts []string
	for i, t := range entry.Topics {
		if m.display.Filter.IsActive(t.Key) {
			parts = append(parts, active.Render(fmt.Sprintf("%d●%s", i+1, t.Label)))
		} else {
			parts = append(parts, inactive.Render(fmt.Sprintf("%d○%s", i+1, t.Label)))
		}
	}
	nsfw := "hidden"
	if m.display.Filter.IncludeSensitive {
		nsfw = "shown"
	}
	status := inactive.Render(fmt.Sprintf("detail ≤ %g · nsfw %s", m.display.Filter.MaxDetail, nsfw))
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " ") + "\n" + status)
}

func (m browserModel) body(width int) string {
	if len(m.display.Entries) == 0 {
		msg := "Nothing on this page."
		if m.display.Window.MaxPages == 0 {
			msg = "No entries match the current filter. Toggle a topic (1-8), raise the detail (+) or show nsfw (s)."
		}
		return m.cfg.Theme.ViewPaneStyle().Width(width).Render(msg)
	}

	cols := window.Columns(m.display.Window, m.display.Entries, m.cfg.Epoch)
	if m.display.Window.Scale == window.Page {
		var cards []string
		for _, e := range m.display.Entries {
			cards = append(cards, m.card(e, width, false))
		}
		return strings.Join(cards, "\n")
	}

	colWidth := max(width/len(cols), 8)
	blocks := make([]string, len(cols))
	for i, col := range cols {
		lines := []string{m.cfg.Theme.HelpStyle().Width(colWidth).Render(col.Label)}
		for _, e := range col.Entries {
			lines = append(lines, m.card(e, colWidth, m.display.Window.Scale == window.Week))
		}
		blocks[i] = lipgloss.NewStyle().Width(colWidth).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// card renders one entry. Week cards show the time only, the others the date.
func (m browserModel) card(e entry.Entry, width int, timeOnly bool) string {
	focused := len(m.display.Entries) > 0 && m.display.Entries[m.cursor].Index == e.Index
	selected := m.display.Selection.Index == e.Index

	prefix := "  "
	if focused {
		prefix = "› "
	}
	when := e.Date.Format("Jan 2 15:04")
	if timeOnly {
		when = e.Date.Format("15:04")
	}
	text := prefix + e.Title + "\n  " + when
	if e.Sensitive {
		text += " · NSFW"
	}
	if m.display.Window.Scale == window.Page {
		if preview := e.Preview(previewLength); preview != "" {
			text += "\n  " + preview
		}
	}

	return m.cfg.Theme.CardStyle(selected, focused).Width(width).Render(text)
}

func (m browserModel) helpOverlay() string {
	h := m.help
	h.ShowAll = true
	box := m.cfg.Theme.BorderStyle().
		Padding(1, 2).
		Render(h.View(m.keys))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
}

// RunTUI launches the interactive browser over nav.
func RunTUI(nav Navigator, cfg TUIConfig) error {
	m := newBrowserModel(nav, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
