package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browser key bindings.
type keyMap struct {
	PrevPage   key.Binding
	NextPage   key.Binding
	PrevEntry  key.Binding
	NextEntry  key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Clear      key.Binding
	Week       key.Binding
	Month      key.Binding
	Pages      key.Binding
	Topic      key.Binding
	MoreDetail key.Binding
	LessDetail key.Binding
	Sensitive  key.Binding
	GoToPage   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		PrevEntry:  key.NewBinding(key.WithKeys("p", "["), key.WithHelp("p", "prev entry")),
		NextEntry:  key.NewBinding(key.WithKeys("n", "]"), key.WithHelp("n", "next entry")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/close entry")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close entry")),
		Week:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Pages:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pages")),
		Topic:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "toggle topic")),
		MoreDetail: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more detail")),
		LessDetail: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "less detail")),
		Sensitive:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "nsfw on/off")),
		GoToPage:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to page")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll entry")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll entry")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.NextEntry, k.Toggle, k.Topic, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.PrevEntry, k.NextEntry, k.Up, k.Down, k.Toggle, k.Clear},
		{k.Week, k.Month, k.Pages, k.GoToPage, k.ScrollUp, k.ScrollDown},
		{k.Topic, k.MoreDetail, k.LessDetail, k.Sensitive, k.Help, k.Quit},
	}
}
