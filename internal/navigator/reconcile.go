package navigator

import (
	"log/slog"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/window"
)

// reconcile derives a consistent state and its display from st. When follow
// is set the page is moved until it shows the selected entry; otherwise only
// invalid or empty pages are repaired.
func reconcile(entries []entry.Entry, st State, follow bool, logger *slog.Logger) (State, DisplayState) {
	if st.Page < 1 {
		st.Page = 1
	}

	filtered := filter.Apply(entries, st.Filter)
	if len(filtered) == 0 {
		return st, DisplayState{
			Window:    window.State{Scale: st.Scale, PageNumber: st.Page},
			Selection: st.Selection,
			Filter:    st.Filter,
		}
	}

	if sel := repairSelection(entries, filtered, st.Selection); sel != st.Selection {
		logger.Debug("selection repaired",
			"from", st.Selection.Index, "to", sel.Index, "direction", sel.Direction.String())
		st.Selection = sel
	}

	plan, err := window.Plan(entries, filtered, st.Scale, st.Page)
	for steps := 0; needsRepair(filtered, plan, err, st.Selection, follow); steps++ {
		if steps > plan.MaxPages {
			logger.Warn("page repair did not converge",
				"scale", st.Scale.String(), "page", st.Page, "max_pages", plan.MaxPages)
			break
		}
		next := stepPage(st.Page, plan.MaxPages, st.Selection.Direction)
		logger.Debug("page repaired", "scale", st.Scale.String(), "from", st.Page, "to", next)
		st.Page = next
		plan, err = window.Plan(entries, filtered, st.Scale, st.Page)
	}
	if err != nil {
		st.Page = 1
		plan, _ = window.Plan(entries, filtered, st.Scale, st.Page)
	}

	return st, DisplayState{
		Window:    plan,
		Entries:   window.Slice(filtered, plan),
		Selection: st.Selection,
		Filter:    st.Filter,
	}
}

func needsRepair(filtered []entry.Entry, plan window.State, err error, sel Selection, follow bool) bool {
	if err != nil || plan.Empty() {
		return true
	}
	return follow && sel.Selected() && !window.Contains(filtered, plan, sel.Index)
}

// repairSelection moves a filtered-out selection to a visible neighbour.
// Backward steps wrap from the first entry to the last; forward steps stop
// at the last entry and turn backward from there.
func repairSelection(entries, filtered []entry.Entry, sel Selection) Selection {
	if !sel.Selected() {
		return sel
	}
	if sel.Index < 0 || sel.Index >= len(entries) {
		sel.Index = None
		return sel
	}

	visible := make([]bool, len(entries))
	for _, e := range filtered {
		visible[e.Index] = true
	}

	for steps := 0; !visible[sel.Index]; steps++ {
		if steps > 2*len(entries) {
			sel.Index = None
			return sel
		}
		if sel.Direction == Backward {
			sel.Index--
			if sel.Index < 0 {
				sel.Index = len(entries) - 1
			}
			continue
		}
		if sel.Index+1 >= len(entries) {
			sel.Direction = Backward
			continue
		}
		sel.Index++
	}
	return sel
}

// stepPage moves one page in dir, wrapping past either end.
func stepPage(page, maxPages int, dir Direction) int {
	if dir == Backward {
		page--
		if page < 1 || page > maxPages {
			return maxPages
		}
		return page
	}
	page++
	if page < 1 || page > maxPages {
		return 1
	}
	return page
}
