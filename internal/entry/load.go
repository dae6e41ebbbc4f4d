package entry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// ErrMalformedInput is returned when a raw record cannot be turned into an entry.
var ErrMalformedInput = errors.New("malformed input")

const (
	dateDigits = 14
	day        = 24 * time.Hour
)

type loadOptions struct {
	loc   *time.Location
	epoch time.Time
}

// Option customises Load.
type Option func(*loadOptions)

// WithLocation sets the time zone raw dates are interpreted in (default time.Local).
func WithLocation(loc *time.Location) Option {
	return func(o *loadOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithEpoch sets the instant day offsets are counted from. The default is
// midnight of the earliest entry's day.
func WithEpoch(t time.Time) Option {
	return func(o *loadOptions) {
		o.epoch = t
	}
}

// Load turns raw records into date-sorted entries. Any record whose date
// cannot be parsed aborts the whole load with ErrMalformedInput.
func Load(raws []Raw, opts ...Option) ([]Entry, error) {
	o := &loadOptions{loc: time.Local}
	for _, opt := range opts {
		opt(o)
	}

	entries := make([]Entry, 0, len(raws))
	for i, r := range raws {
		if len(r.Date) == 0 {
			return nil, fmt.Errorf("%w: record %d has no date", ErrMalformedInput, i)
		}
		date, err := ParseDate(r.Date[0], o.loc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		entries = append(entries, Entry{
			Date:       date,
			Paragraphs: paragraphs(r.Components),
			Topics:     topics(r.Properties.Tags),
			Detail:     detail(r.Components),
			Sensitive:  r.Properties.NSFW,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	epoch := o.epoch
	if epoch.IsZero() && len(entries) > 0 {
		y, m, d := entries[0].Date.Date()
		epoch = time.Date(y, m, d, 0, 0, 0, 0, o.loc)
	}

	for i := range entries {
		entries[i].Index = i
		entries[i].Title = "Entry " + strconv.Itoa(i)
		entries[i].DayOffset = DayOffset(entries[i].Date, epoch)
	}
	return entries, nil
}

// ParseDate parses the compact YYYYMMDDhhmmss numeral used by raw records.
func ParseDate(v int64, loc *time.Location) (time.Time, error) {
	s := strconv.FormatInt(v, 10)
	if v < 0 || len(s) != dateDigits {
		return time.Time{}, fmt.Errorf("%w: date %d is not a 14-digit timestamp", ErrMalformedInput, v)
	}

	t, err := time.ParseInLocation("20060102150405", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %d: %v", ErrMalformedInput, v, err)
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) int64 {
	v, _ := strconv.ParseInt(t.Format("20060102150405"), 10, 64)
	return v
}

// DayOffset returns the number of whole days between epoch and t, rounded down.
func DayOffset(t, epoch time.Time) int {
	return int(math.Floor(float64(t.Sub(epoch)) / float64(day)))
}

// Span returns the earliest and latest entry dates of a sorted list.
func Span(entries []Entry) (earliest, latest time.Time, ok bool) {
	if len(entries) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return entries[0].Date, entries[len(entries)-1].Date, true
}

func detail(components []Component) float64 {
	var sum float64
	var n int
	for _, c := range components {
		if c.Disclosed() {
			sum += c.Score
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return sum / float64(n)
}

func paragraphs(components []Component) []string {
	var out []string
	for _, c := range components {
		if c.Text != "" {
			out = append(out, c.Text)
		}
	}
	return out
}

func topics(tags Tags) []string {
	set := map[string]bool{
		TopicHRT:         true,
		TopicDomperidone: true,
		TopicComingOut:   true,
	}
	if tags.FFS {
		set[TopicFFS] = true
	}
	if tags.SRS {
		set[TopicSRS] = true
	}
	if tags.Depression {
		set[TopicDepression] = true
	}
	if tags.SubstanceUse {
		set[TopicSubstanceUse] = true
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
