// Package window partitions a date-sorted entry list into numbered pages by
// calendar week, calendar month, or a fixed number of entries.
package window

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aphreditto/diary/internal/entry"
)

// PageSize is the number of entries on a page at Page scale.
const PageSize = 4

// ErrOutOfRange is returned by Plan when the page number is not in [1, MaxPages].
var ErrOutOfRange = errors.New("page out of range")

// Scale is the windowing granularity.
type Scale int

const (
	Week Scale = iota
	Month
	Page
)

var scaleNames = [...]string{"week", "month", "page"}

// Scales lists every scale in display order.
var Scales = []Scale{Week, Month, Page}

func (s Scale) String() string {
	if s < Week || s > Page {
		return fmt.Sprintf("Scale(%d)", int(s))
	}
	return scaleNames[s]
}

// ParseScale parses "week", "month" or "page" (case-insensitive).
func ParseScale(s string) (Scale, error) {
	for i, name := range scaleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Scale(i), nil
		}
	}
	return Week, fmt.Errorf("unknown scale %q (want week, month or page)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scale) UnmarshalText(b []byte) error {
	v, err := ParseScale(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// State describes the current page. Start and End index the filtered entry
// list; End is exclusive.
type State struct {
	Scale      Scale     `json:"scale"`
	PageNumber int       `json:"page"`
	PageStart  time.Time `json:"page_start"`
	PageEnd    time.Time `json:"page_end"`
	MaxPages   int       `json:"max_pages"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
}

// Empty reports whether the window selects no entries.
func (s State) Empty() bool {
	return s.End <= s.Start
}

// Plan computes the window for page of the given scale. all is the full
// sorted entry list and filtered the subset passing the active filter.
// Week and Month boundaries come from all; Page works on filtered only.
// An invalid page yields a partial State (Scale, PageNumber, MaxPages) and
// ErrOutOfRange.
func Plan(all, filtered []entry.Entry, scale Scale, page int) (State, error) {
	st := State{Scale: scale, PageNumber: page}

	switch scale {
	case Week, Month:
		earliest, latest, ok := entry.Span(all)
		if ok {
			st.MaxPages = calendarPages(scale, earliest, latest)
		}
		if page < 1 || page > st.MaxPages {
			return st, fmt.Errorf("%w: %s %d of %d", ErrOutOfRange, scale, page, st.MaxPages)
		}
		st.PageStart, st.PageEnd = calendarBounds(scale, earliest, page)
		st.Start = sort.Search(len(filtered), func(i int) bool {
			return !filtered[i].Date.Before(st.PageStart)
		})
		st.End = sort.Search(len(filtered), func(i int) bool {
			return filtered[i].Date.After(st.PageEnd)
		})
		return st, nil

	case Page:
		st.MaxPages = (len(filtered) + PageSize - 1) / PageSize
		if page < 1 || page > st.MaxPages {
			return st, fmt.Errorf("%w: page %d of %d", ErrOutOfRange, page, st.MaxPages)
		}
		st.Start = max(0, (page-1)*PageSize)
		st.End = min(len(filtered), page*PageSize)
		if !st.Empty() {
			st.PageStart = filtered[st.Start].Date
			st.PageEnd = filtered[st.End-1].Date
		}
		return st, nil
	}

	return st, fmt.Errorf("unknown scale %d", int(scale))
}

// Slice returns the filtered entries inside the window.
func Slice(filtered []entry.Entry, st State) []entry.Entry {
	if st.Start < 0 || st.End > len(filtered) || st.Empty() {
		return nil
	}
	return filtered[st.Start:st.End]
}

// Contains reports whether the entry with the given store index is in the window.
func Contains(filtered []entry.Entry, st State, index int) bool {
	for _, e := range Slice(filtered, st) {
		if e.Index == index {
			return true
		}
	}
	return false
}

func calendarPages(scale Scale, earliest, latest time.Time) int {
	if scale == Month {
		ey, em, _ := earliest.Date()
		ly, lm, _ := latest.Date()
		return (ly-ey)*12 + int(lm-em) + 1
	}
	return daysBetween(StartOfWeek(earliest), StartOfWeek(latest))/7 + 1
}

func calendarBounds(scale Scale, earliest time.Time, page int) (time.Time, time.Time) {
	if scale == Month {
		start := StartOfMonth(earliest).AddDate(0, page-1, 0)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	start := StartOfWeek(earliest.AddDate(0, 0, 7*(page-1)))
	return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days between two midnights, tolerating DST shifts.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
