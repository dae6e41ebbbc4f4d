package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aphreditto/diary/internal/entry"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Index: 0, Topics: []string{"hrt"}, Detail: 10},
		{Index: 1, Topics: []string{"ffs", "hrt"}, Detail: 50},
		{Index: 2, Topics: []string{"srs"}, Detail: 90, Sensitive: true},
		{Index: 3, Topics: []string{"depression"}, Detail: 1},
		{Index: 4, Topics: []string{"ffs"}, Detail: 100, Sensitive: true},
	}
}

func indices(entries []entry.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

func TestMatches(t *testing.T) {
	e := entry.Entry{Topics: []string{"ffs", "hrt"}, Detail: 50, Sensitive: true}
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"all conditions met", Config{ActiveTopics: []string{"ffs"}, MaxDetail: 50, IncludeSensitive: true}, true},
		{"no shared topic", Config{ActiveTopics: []string{"srs"}, MaxDetail: 100, IncludeSensitive: true}, false},
		{"detail above max", Config{ActiveTopics: []string{"hrt"}, MaxDetail: 49, IncludeSensitive: true}, false},
		{"sensitive hidden", Config{ActiveTopics: []string{"hrt"}, MaxDetail: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(e, tt.cfg); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyPartitionsAndIsIdempotent(t *testing.T) {
	entries := sampleEntries()
	cfg := Config{ActiveTopics: []string{"hrt", "ffs"}, MaxDetail: 60}

	in := Apply(entries, cfg)
	if !reflect.DeepEqual(indices(in), []int{0, 1}) {
		t.Fatalf("filtered = %v", indices(in))
	}

	var out int
	for _, e := range entries {
		if !Matches(e, cfg) {
			out++
		}
	}
	if len(in)+out != len(entries) {
		t.Errorf("partition is not exhaustive: %d + %d != %d", len(in), out, len(entries))
	}

	again := Apply(in, cfg)
	if !reflect.DeepEqual(indices(again), indices(in)) {
		t.Errorf("re-applying changed the set: %v", indices(again))
	}
}

func TestPatchRejectsEmptyTopics(t *testing.T) {
	cfg := Config{ActiveTopics: []string{"hrt"}, MaxDetail: 100}

	got, err := cfg.Apply(Patch{ToggleTopic: "hrt"})
	if !errors.Is(err, ErrEmptyTopics) {
		t.Fatalf("expected ErrEmptyTopics, got %v", err)
	}
	if !reflect.DeepEqual(got.ActiveTopics, []string{"hrt"}) {
		t.Errorf("topics = %v, want [hrt]", got.ActiveTopics)
	}

	_, err = cfg.Apply(Patch{ActiveTopics: []string{}})
	if !errors.Is(err, ErrEmptyTopics) {
		t.Errorf("expected ErrEmptyTopics for empty replacement, got %v", err)
	}
}

func TestPatchToggle(t *testing.T) {
	cfg := Config{ActiveTopics: []string{"hrt", "ffs"}, MaxDetail: 100}

	off, err := cfg.Apply(Patch{ToggleTopic: "ffs"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(off.ActiveTopics, []string{"hrt"}) {
		t.Errorf("after toggle off: %v", off.ActiveTopics)
	}

	on, err := off.Apply(Patch{ToggleTopic: "srs"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(on.ActiveTopics, []string{"hrt", "srs"}) {
		t.Errorf("after toggle on: %v", on.ActiveTopics)
	}
	if !reflect.DeepEqual(cfg.ActiveTopics, []string{"hrt", "ffs"}) {
		t.Errorf("original config mutated: %v", cfg.ActiveTopics)
	}
}

func TestPatchDetailAndSensitive(t *testing.T) {
	cfg := Default()

	low := 0.0
	if _, err := cfg.Apply(Patch{MaxDetail: &low}); !errors.Is(err, ErrDetailRange) {
		t.Errorf("expected ErrDetailRange, got %v", err)
	}

	d := 30.0
	yes := true
	got, err := cfg.Apply(Patch{MaxDetail: &d, IncludeSensitive: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if got.MaxDetail != 30 || !got.IncludeSensitive {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.ActiveTopics) != len(entry.Topics) {
		t.Errorf("expected %d topics, got %d", len(entry.Topics), len(cfg.ActiveTopics))
	}
	if cfg.IncludeSensitive {
		t.Error("sensitive entries should be hidden by default")
	}
}
