package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/window"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "prefs")
	return Open(dir, nil), dir
}

func TestReadDefaults(t *testing.T) {
	s, _ := newStore(t)
	c, scale := s.Read(filter.Default(), window.Week)
	if !c.Equal(filter.Default()) {
		t.Errorf("filter = %+v, want defaults", c)
	}
	if scale != window.Week {
		t.Errorf("scale = %s", scale)
	}
}

func TestWriteThenRead(t *testing.T) {
	s, dir := newStore(t)
	for key, v := range map[string]any{
		KeyNSFW:         true,
		KeyDetail:       42.0,
		KeyActiveTopics: []string{"srs", "ffs"},
		KeyScale:        window.Month,
	} {
		if err := s.Write(key, v); err != nil {
			t.Fatalf("Write %s: %v", key, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, KeyScale))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"month"` {
		t.Errorf("stored scale = %s", data)
	}

	c, scale := Open(dir, nil).Read(filter.Default(), window.Week)
	if !c.IncludeSensitive || c.MaxDetail != 42 {
		t.Errorf("filter = %+v", c)
	}
	if !reflect.DeepEqual(c.ActiveTopics, []string{"srs", "ffs"}) {
		t.Errorf("topics = %v", c.ActiveTopics)
	}
	if scale != window.Month {
		t.Errorf("scale = %s", scale)
	}
}

func TestReadIgnoresInvalidValues(t *testing.T) {
	s, dir := newStore(t)
	files := map[string]string{
		KeyNSFW:         `"yes please"`,
		KeyDetail:       `400`,
		KeyActiveTopics: `[]`,
		KeyScale:        `"fortnight"`,
	}
	for name, content := range files {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	c, scale := s.Read(filter.Default(), window.Page)
	if !c.Equal(filter.Default()) {
		t.Errorf("filter = %+v, want defaults", c)
	}
	if scale != window.Page {
		t.Errorf("scale = %s, want page", scale)
	}
}

func TestStoreListenerWritesChangedKeys(t *testing.T) {
	s, dir := newStore(t)
	prev := navigator.DisplayState{Filter: filter.Default()}
	next := prev
	next.Filter = filter.Default()
	next.Filter.IncludeSensitive = true

	if err := s.StateChanged(prev, next); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, KeyNSFW)); err != nil {
		t.Errorf("nsfw not written: %v", err)
	}
	for _, key := range []string{KeyDetail, KeyActiveTopics, KeyScale} {
		if _, err := os.Stat(filepath.Join(dir, key)); err == nil {
			t.Errorf("%s written although unchanged", key)
		}
	}
}

func TestLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location")
	loc := NewLocation(path)

	if got := loc.Selected(); got != navigator.None {
		t.Errorf("absent file: %d", got)
	}

	if err := loc.Set(12); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "entry=12\n" {
		t.Errorf("file = %q", data)
	}
	if got := NewLocation(path).Selected(); got != 12 {
		t.Errorf("Selected = %d, want 12", got)
	}

	if err := loc.Set(navigator.None); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file removed, got %v", err)
	}
}

func TestLocationKeepsOtherParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location")
	if err := os.WriteFile(path, []byte("?theme=dark&entry=3"), 0644); err != nil {
		t.Fatal(err)
	}
	loc := NewLocation(path)
	if got := loc.Selected(); got != 3 {
		t.Fatalf("Selected = %d, want 3", got)
	}
	if err := loc.Set(navigator.None); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "theme=dark\n" {
		t.Errorf("file = %q", data)
	}
}

func TestLocationGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location")
	for _, content := range []string{"entry=abc", "entry=-4", "%zz", "entry="} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if got := NewLocation(path).Selected(); got != navigator.None {
			t.Errorf("%q: Selected = %d", content, got)
		}
	}
}

func TestListenersFollowCoordinator(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "prefs"), nil)
	loc := NewLocation(filepath.Join(dir, "location"))

	base := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	entries := []entry.Entry{
		{Index: 0, Date: base, Topics: []string{"hrt"}, Detail: 1},
		{Index: 1, Date: base.AddDate(0, 0, 1), Topics: []string{"hrt"}, Detail: 1},
	}
	c := navigator.New(entries, navigator.WithListener(store), navigator.WithListener(loc))

	c.SetSelected(1, navigator.Forward)
	c.SetScale(window.Page)

	if got := loc.Selected(); got != 1 {
		t.Errorf("location = %d, want 1", got)
	}
	if _, scale := store.Read(filter.Default(), window.Week); scale != window.Page {
		t.Errorf("stored scale = %s, want page", scale)
	}
}
