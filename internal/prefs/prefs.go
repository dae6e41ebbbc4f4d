// Package prefs persists the browsing preferences (filter and scale) and the
// selected-entry location between runs.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/window"
	"github.com/peterbourgon/diskv/v3"
)

// Preference keys. Each holds a JSON value.
const (
	KeyNSFW         = "diary.nsfw"
	KeyDetail       = "diary.detail"
	KeyActiveTopics = "diary.activeTopics"
	KeyScale        = "diary.scale"
)

// Keys lists every preference key.
var Keys = []string{KeyNSFW, KeyDetail, KeyActiveTopics, KeyScale}

// Store is a flat key/value preference store on disk.
type Store struct {
	d      *diskv.Diskv
	logger *slog.Logger
}

// Open returns a store rooted at dir. The directory is created on first write.
func Open(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 64 * 1024,
		}),
		logger: logger,
	}
}

// Read returns the persisted filter and scale. Keys that are absent,
// unreadable or invalid keep their value from the defaults.
func (s *Store) Read(defaults filter.Config, scale window.Scale) (filter.Config, window.Scale) {
	c := filter.Config{
		ActiveTopics:     append([]string(nil), defaults.ActiveTopics...),
		MaxDetail:        defaults.MaxDetail,
		IncludeSensitive: defaults.IncludeSensitive,
	}

	var nsfw bool
	if s.read(KeyNSFW, &nsfw) {
		c.IncludeSensitive = nsfw
	}

	var detail float64
	if s.read(KeyDetail, &detail) {
		if detail >= filter.MinDetail && detail <= filter.MaxDetail {
			c.MaxDetail = detail
		} else {
			s.logger.Warn("ignoring stored preference", "key", KeyDetail, "value", detail)
		}
	}

	var topics []string
	if s.read(KeyActiveTopics, &topics) {
		if next, err := c.Apply(filter.Patch{ActiveTopics: topics}); err == nil {
			c = next
		} else {
			s.logger.Warn("ignoring stored preference", "key", KeyActiveTopics, "error", err)
		}
	}

	var stored window.Scale
	if s.read(KeyScale, &stored) {
		scale = stored
	}

	return c, scale
}

func (s *Store) read(key string, v any) bool {
	if !s.d.Has(key) {
		return false
	}
	data, err := s.d.Read(key)
	if err != nil {
		s.logger.Warn("reading preference", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("ignoring stored preference", "key", key, "error", err)
		return false
	}
	return true
}

// Write stores a JSON value under key.
func (s *Store) Write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Clear removes every preference.
func (s *Store) Clear() error {
	return s.d.EraseAll()
}

// StateChanged writes the preferences that differ between prev and next.
func (s *Store) StateChanged(prev, next navigator.DisplayState) error {
	var errs []error
	if prev.Filter.IncludeSensitive != next.Filter.IncludeSensitive {
		errs = append(errs, s.Write(KeyNSFW, next.Filter.IncludeSensitive))
	}
	if prev.Filter.MaxDetail != next.Filter.MaxDetail {
		errs = append(errs, s.Write(KeyDetail, next.Filter.MaxDetail))
	}
	if !sameTopics(prev.Filter.ActiveTopics, next.Filter.ActiveTopics) {
		errs = append(errs, s.Write(KeyActiveTopics, next.Filter.ActiveTopics))
	}
	if prev.Window.Scale != next.Window.Scale {
		errs = append(errs, s.Write(KeyScale, next.Window.Scale))
	}
	return errors.Join(errs...)
}

func sameTopics(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
