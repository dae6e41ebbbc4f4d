package window

import (
	"fmt"
	"time"

	"github.com/aphreditto/diary/internal/entry"
)

// Column is one grid column of a displayed page: a weekday at Week scale,
// a seven-day block at Month scale, or the whole slice at Page scale.
type Column struct {
	Label   string
	Start   time.Time
	Offset  int
	Entries []entry.Entry
}

// Columns groups the displayed entries of st into grid columns. Offsets are
// counted in days (Week) or weeks (Month) from epoch.
func Columns(st State, displayed []entry.Entry, epoch time.Time) []Column {
	switch st.Scale {
	case Week:
		cols := make([]Column, 7)
		for i := range cols {
			start := st.PageStart.AddDate(0, 0, i)
			offset := entry.DayOffset(start, epoch)
			cols[i] = Column{
				Label:  fmt.Sprintf("%s · Day %d", start.Weekday().String()[:3], offset),
				Start:  start,
				Offset: offset,
			}
		}
		for _, e := range displayed {
			wd := int(e.Date.Weekday())
			cols[wd].Entries = append(cols[wd].Entries, e)
		}
		return cols

	case Month:
		var cols []Column
		for start := st.PageStart; !start.After(st.PageEnd); start = start.AddDate(0, 0, 7) {
			offset := entry.DayOffset(start, epoch) / 7
			cols = append(cols, Column{
				Label:  fmt.Sprintf("Week %d", offset),
				Start:  start,
				Offset: offset,
			})
		}
		for _, e := range displayed {
			i := daysBetween(st.PageStart, dayStart(e.Date)) / 7
			if i >= 0 && i < len(cols) {
				cols[i].Entries = append(cols[i].Entries, e)
			}
		}
		return cols
	}

	return []Column{{Label: fmt.Sprintf("Page %d", st.PageNumber), Start: st.PageStart, Entries: displayed}}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
