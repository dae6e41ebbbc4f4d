package navigator

import (
	"fmt"
	"strings"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/window"
)

// None is the selection index meaning "nothing selected".
const None = -1

// Direction is the direction of the last navigation step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ParseDirection parses "forward"/"next" or "backward"/"prev".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "next", "":
		return Forward, nil
	case "backward", "back", "prev", "previous":
		return Backward, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Selection is the selected entry and the direction used to repair it. Index
// refers to entry.Entry.Index, not to a position in the displayed page.
type Selection struct {
	Index     int       `json:"index"`
	Direction Direction `json:"direction"`
}

// Selected reports whether an entry is selected.
func (s Selection) Selected() bool {
	return s.Index != None
}

// State is everything the coordinator owns.
type State struct {
	Scale     window.Scale
	Page      int
	Filter    filter.Config
	Selection Selection
}

// DefaultState is the state used when nothing has been persisted.
func DefaultState() State {
	return State{
		Scale:     window.Week,
		Page:      1,
		Filter:    filter.Default(),
		Selection: Selection{Index: None},
	}
}

// DisplayState is the published result of a reconciliation pass.
type DisplayState struct {
	Window    window.State  `json:"window"`
	Entries   []entry.Entry `json:"entries"`
	Selection Selection     `json:"selection"`
	Filter    filter.Config `json:"filter"`
}

// SelectedEntry returns the selected entry if it is on the displayed page.
func (d DisplayState) SelectedEntry() (entry.Entry, bool) {
	if !d.Selection.Selected() {
		return entry.Entry{}, false
	}
	for _, e := range d.Entries {
		if e.Index == d.Selection.Index {
			return e, true
		}
	}
	return entry.Entry{}, false
}

func (d DisplayState) equal(o DisplayState) bool {
	if d.Window != o.Window || d.Selection != o.Selection || !d.Filter.Equal(o.Filter) {
		return false
	}
	if len(d.Entries) != len(o.Entries) {
		return false
	}
	for i := range d.Entries {
		if d.Entries[i].Index != o.Entries[i].Index {
			return false
		}
	}
	return true
}

// Listener is notified after every transition that changes the display state.
type Listener interface {
	StateChanged(prev, next DisplayState) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(prev, next DisplayState) error

// StateChanged calls f.
func (f ListenerFunc) StateChanged(prev, next DisplayState) error {
	return f(prev, next)
}
