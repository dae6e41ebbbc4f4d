// Package navigator owns the browsing state (scale, page, filter and
// selection) and keeps it consistent with the entry store.
//
// Every operation runs a single synchronous reconciliation pass and then
// notifies the registered listeners. A Coordinator is not safe for
// concurrent use; callers that share one must serialise access.
package navigator

import (
	"log/slog"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/window"
)

// Coordinator is the navigation state machine.
type Coordinator struct {
	entries   []entry.Entry
	state     State
	display   DisplayState
	listeners []Listener
	logger    *slog.Logger
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithState sets the initial state. An invalid filter falls back to the default.
func WithState(st State) Option {
	return func(c *Coordinator) {
		c.state = st
	}
}

// WithLogger sets the logger used for repair and listener diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithListener registers a listener.
func WithListener(l Listener) Option {
	return func(c *Coordinator) {
		c.listeners = append(c.listeners, l)
	}
}

// New creates a coordinator over a date-sorted entry list whose indices match
// their positions, as produced by entry.Load. The initial state is reconciled
// before New returns; listeners are not notified for it.
func New(entries []entry.Entry, opts ...Option) *Coordinator {
	c := &Coordinator{
		entries: entries,
		state:   DefaultState(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := filter.Validate(c.state.Filter); err != nil {
		c.logger.Warn("invalid initial filter, using default", "error", err)
		c.state.Filter = filter.Default()
	}
	if c.state.Selection.Index < None {
		c.state.Selection.Index = None
	}
	c.state, c.display = reconcile(c.entries, c.state, true, c.logger)
	return c
}

// AddListener registers a listener after construction.
func (c *Coordinator) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Entries returns the full, read-only entry store.
func (c *Coordinator) Entries() []entry.Entry {
	return c.entries
}

// Entry returns the entry with the given store index.
func (c *Coordinator) Entry(index int) (entry.Entry, bool) {
	if index < 0 || index >= len(c.entries) {
		return entry.Entry{}, false
	}
	return c.entries[index], true
}

// Filtered returns the entries passing the current filter.
func (c *Coordinator) Filtered() []entry.Entry {
	return filter.Apply(c.entries, c.state.Filter)
}

// State returns a copy of the owned state.
func (c *Coordinator) State() State {
	st := c.state
	st.Filter.ActiveTopics = append([]string(nil), st.Filter.ActiveTopics...)
	return st
}

// Display returns the current display state. It has no side effects.
func (c *Coordinator) Display() DisplayState {
	d := c.display
	d.Filter.ActiveTopics = append([]string(nil), d.Filter.ActiveTopics...)
	return d
}

// SetScale switches the windowing scale, keeping the selection in view.
func (c *Coordinator) SetScale(scale window.Scale) DisplayState {
	st := c.state
	st.Scale = scale
	return c.apply(st, true)
}

// SetFilter applies a partial filter update. A rejected patch leaves the
// state untouched and returns the filter error.
func (c *Coordinator) SetFilter(p filter.Patch) (DisplayState, error) {
	next, err := c.state.Filter.Apply(p)
	if err != nil {
		c.logger.Debug("filter change rejected", "error", err)
		return c.Display(), err
	}
	st := c.state
	st.Filter = next
	return c.apply(st, true), nil
}

// ToggleTopic flips one topic. It reports false when the change was rejected
// because it would leave no topic active.
func (c *Coordinator) ToggleTopic(topic string) (DisplayState, bool) {
	d, err := c.SetFilter(filter.Patch{ToggleTopic: topic})
	return d, err == nil
}

// SetSelected selects the entry with the given store index, or clears the
// selection with None. Indices outside the store clear the selection.
func (c *Coordinator) SetSelected(index int, dir Direction) DisplayState {
	if index != None {
		if _, ok := c.Entry(index); !ok {
			c.logger.Debug("ignoring unknown entry index", "index", index)
			index = None
		}
	}
	st := c.state
	st.Selection = Selection{Index: index, Direction: dir}
	return c.apply(st, true)
}

// SetPage jumps to page n. Invalid pages are repaired in the direction of
// the jump.
func (c *Coordinator) SetPage(n int) DisplayState {
	st := c.state
	st.Selection.Direction = Forward
	if n < st.Page {
		st.Selection.Direction = Backward
	}
	st.Page = n
	return c.apply(st, false)
}

// AdvancePage moves one page in dir, wrapping past either end.
func (c *Coordinator) AdvancePage(dir Direction) DisplayState {
	maxPages := c.display.Window.MaxPages
	if maxPages == 0 {
		return c.Display()
	}
	st := c.state
	st.Selection.Direction = dir
	st.Page = stepPage(st.Page, maxPages, dir)
	return c.apply(st, false)
}

// AdvanceSelection selects the neighbouring visible entry in dir, stopping
// at the ends of the filtered list. With nothing selected it picks the first
// (forward) or last (backward) entry on the current page.
func (c *Coordinator) AdvanceSelection(dir Direction) DisplayState {
	filtered := c.Filtered()
	if len(filtered) == 0 {
		return c.Display()
	}

	st := c.state
	st.Selection.Direction = dir

	if !st.Selection.Selected() {
		candidates := c.display.Entries
		if len(candidates) == 0 {
			candidates = filtered
		}
		if dir == Backward {
			st.Selection.Index = candidates[len(candidates)-1].Index
		} else {
			st.Selection.Index = candidates[0].Index
		}
		return c.apply(st, true)
	}

	pos := -1
	for i, e := range filtered {
		if e.Index == st.Selection.Index {
			pos = i
			break
		}
	}
	switch {
	case pos < 0:
		// Not visible: reconciliation walks it to a neighbour in dir.
	case dir == Backward && pos > 0:
		st.Selection.Index = filtered[pos-1].Index
	case dir == Forward && pos < len(filtered)-1:
		st.Selection.Index = filtered[pos+1].Index
	}
	return c.apply(st, true)
}

func (c *Coordinator) apply(st State, follow bool) DisplayState {
	prev := c.display
	c.state, c.display = reconcile(c.entries, st, follow, c.logger)
	if !prev.equal(c.display) {
		c.notify(prev, c.display)
	}
	return c.Display()
}

func (c *Coordinator) notify(prev, next DisplayState) {
	for _, l := range c.listeners {
		if err := l.StateChanged(prev, next); err != nil {
			c.logger.Warn("state listener failed", "error", err)
		}
	}
}
