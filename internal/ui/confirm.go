package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	confirmYes = key.NewBinding(key.WithKeys("y", "Y"))
	confirmNo  = key.NewBinding(key.WithKeys("n", "N", "enter", "esc", "ctrl+c"))
)

// confirmModel is a single-keystroke yes/no prompt that defaults to no.
type confirmModel struct {
	prompt    string
	theme     Theme
	answered  bool
	confirmed bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, confirmYes):
		m.answered, m.confirmed = true, true
	case key.Matches(k, confirmNo):
		m.answered = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return m.theme.HeaderStyle().Render(m.prompt) + " " + m.theme.DangerStyle().Render("[y/N]") + " "
}

// Confirm asks a yes/no question, defaulting to no. On a terminal it uses a
// Bubble Tea prompt; otherwise it reads one line from stdin.
func Confirm(prompt string, theme Theme) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ConfirmFrom(os.Stdin, os.Stderr, prompt)
	}
	result, err := tea.NewProgram(confirmModel{prompt: prompt, theme: theme}).Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed, nil
}

// ConfirmFrom prints prompt to w and reads the answer from r.
// Only "y" or "yes" confirm.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
