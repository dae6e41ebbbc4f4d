package window

import (
	"errors"
	"testing"
	"time"

	"github.com/aphreditto/diary/internal/entry"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func makeEntries(dates ...time.Time) []entry.Entry {
	entries := make([]entry.Entry, len(dates))
	for i, d := range dates {
		entries[i] = entry.Entry{Index: i, Date: d, Topics: []string{"hrt"}, Detail: 1}
	}
	return entries
}

func TestPlanWeekExample(t *testing.T) {
	entries := makeEntries(at(2023, 1, 23, 10), at(2023, 1, 24, 9), at(2023, 1, 26, 20))

	st, err := Plan(entries, entries, Week, 1)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	wantStart := time.Date(2023, 1, 22, 0, 0, 0, 0, time.UTC)
	if !st.PageStart.Equal(wantStart) {
		t.Errorf("page start = %v, want %v", st.PageStart, wantStart)
	}
	if st.PageEnd.Weekday() != time.Saturday || st.PageEnd.Day() != 28 {
		t.Errorf("page end = %v, want Saturday 2023-01-28", st.PageEnd)
	}
	if st.MaxPages != 1 {
		t.Errorf("max pages = %d, want 1", st.MaxPages)
	}
	if got := Slice(entries, st); len(got) != 3 {
		t.Errorf("expected all 3 entries, got %d", len(got))
	}
}

func TestPlanWeekBoundariesIgnoreFilter(t *testing.T) {
	all := makeEntries(at(2023, 1, 2, 8), at(2023, 1, 10, 8), at(2023, 1, 18, 8), at(2023, 1, 30, 8))
	filtered := []entry.Entry{all[0], all[3]}

	st, err := Plan(all, filtered, Week, 2)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if st.MaxPages != 5 {
		t.Errorf("max pages = %d, want 5", st.MaxPages)
	}
	if !st.PageStart.Equal(time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("page start = %v", st.PageStart)
	}
	if !st.Empty() {
		t.Errorf("expected empty window, got [%d,%d)", st.Start, st.End)
	}

	st, err = Plan(all, filtered, Week, 5)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	got := Slice(filtered, st)
	if len(got) != 1 || got[0].Index != 3 {
		t.Errorf("expected entry 3 on page 5, got %v", got)
	}
}

func TestPlanMonth(t *testing.T) {
	all := makeEntries(at(2023, 1, 31, 23), at(2023, 2, 1, 0), at(2023, 3, 15, 12))

	st, err := Plan(all, all, Month, 2)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if st.MaxPages != 3 {
		t.Errorf("max pages = %d, want 3", st.MaxPages)
	}
	if !st.PageStart.Equal(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("page start = %v", st.PageStart)
	}
	if st.PageEnd.Month() != time.February || st.PageEnd.Day() != 28 {
		t.Errorf("page end = %v", st.PageEnd)
	}
	if st.Start != 1 || st.End != 2 {
		t.Errorf("range = [%d,%d), want [1,2)", st.Start, st.End)
	}
}

func TestPlanMonthAcrossYears(t *testing.T) {
	all := makeEntries(at(2022, 11, 5, 0), at(2023, 2, 5, 0))
	st, err := Plan(all, all, Month, 1)
	if err != nil {
		t.Fatal(err)
	}
	if st.MaxPages != 4 {
		t.Errorf("max pages = %d, want 4", st.MaxPages)
	}
}

func TestPlanPageExample(t *testing.T) {
	var dates []time.Time
	for i := 0; i < 7; i++ {
		dates = append(dates, at(2023, 1, 1+i, 9))
	}
	entries := makeEntries(dates...)

	first, err := Plan(entries, entries, Page, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.MaxPages != 2 {
		t.Errorf("max pages = %d, want 2", first.MaxPages)
	}
	if first.Start != 0 || first.End != 4 {
		t.Errorf("page 1 = [%d,%d), want [0,4)", first.Start, first.End)
	}

	second, err := Plan(entries, entries, Page, 2)
	if err != nil {
		t.Fatal(err)
	}
	if second.Start != 4 || second.End != 7 {
		t.Errorf("page 2 = [%d,%d), want [4,7)", second.Start, second.End)
	}
	if !second.PageStart.Equal(entries[4].Date) || !second.PageEnd.Equal(entries[6].Date) {
		t.Errorf("page 2 dates = %v - %v", second.PageStart, second.PageEnd)
	}
}

func TestPlanOutOfRange(t *testing.T) {
	entries := makeEntries(at(2023, 1, 1, 0), at(2023, 1, 2, 0))
	for _, scale := range Scales {
		for _, page := range []int{0, -1, 2} {
			st, err := Plan(entries, entries, scale, page)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("%s page %d: expected ErrOutOfRange, got %v", scale, page, err)
			}
			if st.MaxPages != 1 {
				t.Errorf("%s page %d: max pages = %d, want 1", scale, page, st.MaxPages)
			}
		}
	}

	st, err := Plan(nil, nil, Page, 1)
	if !errors.Is(err, ErrOutOfRange) || st.MaxPages != 0 {
		t.Errorf("empty list: st=%+v err=%v", st, err)
	}
}

func TestPlanIdempotent(t *testing.T) {
	entries := makeEntries(at(2023, 1, 1, 0), at(2023, 2, 9, 0), at(2023, 4, 2, 0))
	a, errA := Plan(entries, entries, Week, 3)
	b, errB := Plan(entries, entries, Week, 3)
	if a != b || (errA == nil) != (errB == nil) {
		t.Errorf("Plan not idempotent: %+v vs %+v", a, b)
	}
}

func TestParseScale(t *testing.T) {
	for _, s := range Scales {
		got, err := ParseScale(s.String())
		if err != nil || got != s {
			t.Errorf("ParseScale(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseScale("year"); err == nil {
		t.Error("expected error for unknown scale")
	}
}

func TestColumnsWeek(t *testing.T) {
	entries := makeEntries(at(2023, 1, 23, 10), at(2023, 1, 24, 9), at(2023, 1, 26, 20))
	st, err := Plan(entries, entries, Week, 1)
	if err != nil {
		t.Fatal(err)
	}
	epoch := time.Date(2023, 1, 23, 0, 0, 0, 0, time.UTC)

	cols := Columns(st, Slice(entries, st), epoch)
	if len(cols) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(cols))
	}
	if cols[0].Label != "Sun · Day -1" {
		t.Errorf("first label = %q", cols[0].Label)
	}
	if len(cols[1].Entries) != 1 || len(cols[2].Entries) != 1 || len(cols[4].Entries) != 1 {
		t.Errorf("unexpected grouping: %d %d %d", len(cols[1].Entries), len(cols[2].Entries), len(cols[4].Entries))
	}
}

func TestColumnsMonth(t *testing.T) {
	entries := makeEntries(at(2023, 1, 2, 0), at(2023, 1, 30, 0))
	st, err := Plan(entries, entries, Month, 1)
	if err != nil {
		t.Fatal(err)
	}
	cols := Columns(st, Slice(entries, st), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	if len(cols) != 5 {
		t.Fatalf("expected 5 week columns for January, got %d", len(cols))
	}
	if len(cols[0].Entries) != 1 || len(cols[4].Entries) != 1 {
		t.Errorf("unexpected grouping: first=%d last=%d", len(cols[0].Entries), len(cols[4].Entries))
	}
	if cols[4].Label != "Week 4" {
		t.Errorf("last label = %q", cols[4].Label)
	}
}
