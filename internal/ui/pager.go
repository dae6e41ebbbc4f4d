package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var pagerQuit = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit"))

// pagerModel scrolls long command output on the theme background.
type pagerModel struct {
	viewport      viewport.Model
	content       string
	theme         Theme
	ready         bool
	maxWidth      int
	width, height int
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, pagerQuit) {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// resize keeps one line free for the footer.
func (m *pagerModel) resize(width, height int) {
	m.width, m.height = width, height
	if !m.ready {
		m.viewport = viewport.New(0, 0)
		m.ready = true
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(height-1, 1)
	m.viewport.Style = m.theme.ViewPaneStyle()
	m.viewport.SetContent(m.content)
}

func (m pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := m.theme.HelpStyle().Render(fmt.Sprintf("↑/↓ scroll • %s %s • %3.f%%",
		pagerQuit.Help().Key, pagerQuit.Help().Desc, m.viewport.ScrollPercent()*100))
	return m.theme.PaintScreen(m.viewport.View()+"\n"+footer, m.width, m.height, m.contentWidth())
}

// PageOutput shows content in a full-screen pager when stdout is a terminal
// too short to hold it, and prints it directly otherwise.
func PageOutput(content string, theme Theme, maxWidth int) error {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if _, height, err := term.GetSize(fd); err == nil && strings.Count(content, "\n") >= height-2 {
			_, err := tea.NewProgram(pagerModel{content: content, theme: theme, maxWidth: maxWidth}, tea.WithAltScreen()).Run()
			return err
		}
	}
	_, err := fmt.Fprint(os.Stdout, content)
	return err
}

// OutputOrPage writes content to w, paging it when w is the terminal.
// Machine-readable output is never paged.
func OutputOrPage(w io.Writer, content string, machine bool, theme Theme, maxWidth int) error {
	if !machine && w == os.Stdout {
		return PageOutput(content, theme, maxWidth)
	}
	_, err := fmt.Fprint(w, content)
	return err
}
