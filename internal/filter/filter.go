// Package filter decides which entries are visible under the current topic,
// detail and sensitivity settings.
package filter

import (
	"errors"
	"fmt"

	"github.com/aphreditto/diary/internal/entry"
)

// Detail bounds accepted by MaxDetail.
const (
	MinDetail = 1
	MaxDetail = 100
)

var (
	ErrEmptyTopics = errors.New("at least one topic must stay active")
	ErrDetailRange = errors.New("detail out of range")
)

// Config is the active filter. ActiveTopics is never empty.
type Config struct {
	ActiveTopics     []string `json:"activeTopics"`
	MaxDetail        float64  `json:"detail"`
	IncludeSensitive bool     `json:"nsfw"`
}

// Default returns a filter showing every catalogued topic at full detail with
// sensitive entries hidden.
func Default() Config {
	return Config{
		ActiveTopics: entry.TopicKeys(),
		MaxDetail:    MaxDetail,
	}
}

// Matches reports whether e passes the filter.
func Matches(e entry.Entry, c Config) bool {
	if e.Detail > c.MaxDetail {
		return false
	}
	if e.Sensitive && !c.IncludeSensitive {
		return false
	}
	for _, t := range c.ActiveTopics {
		if e.HasTopic(t) {
			return true
		}
	}
	return false
}

// Apply returns the entries that match c, preserving order.
func Apply(entries []entry.Entry, c Config) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, c) {
			out = append(out, e)
		}
	}
	return out
}

// IsActive reports whether topic is one of the active topics.
func (c Config) IsActive(topic string) bool {
	for _, t := range c.ActiveTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// Validate checks the invariants of a filter restored from outside.
func Validate(c Config) error {
	if len(c.ActiveTopics) == 0 {
		return ErrEmptyTopics
	}
	if c.MaxDetail < MinDetail || c.MaxDetail > MaxDetail {
		return fmt.Errorf("%w: %v", ErrDetailRange, c.MaxDetail)
	}
	return nil
}

// Equal reports whether two filters are identical, including topic order.
func (c Config) Equal(o Config) bool {
	if c.MaxDetail != o.MaxDetail || c.IncludeSensitive != o.IncludeSensitive {
		return false
	}
	if len(c.ActiveTopics) != len(o.ActiveTopics) {
		return false
	}
	for i := range c.ActiveTopics {
		if c.ActiveTopics[i] != o.ActiveTopics[i] {
			return false
		}
	}
	return true
}

// Patch is a partial filter update. Nil/empty fields are left untouched.
// ActiveTopics replaces the topic set; ToggleTopic flips a single topic
// after ActiveTopics is applied.
type Patch struct {
	ActiveTopics     []string `json:"activeTopics,omitempty"`
	ToggleTopic      string   `json:"toggleTopic,omitempty"`
	MaxDetail        *float64 `json:"detail,omitempty"`
	IncludeSensitive *bool    `json:"nsfw,omitempty"`
}

// Apply returns c with the patch applied. A patch that would break an
// invariant is rejected as a whole and c is returned unchanged.
func (c Config) Apply(p Patch) (Config, error) {
	next := Config{
		ActiveTopics:     append([]string(nil), c.ActiveTopics...),
		MaxDetail:        c.MaxDetail,
		IncludeSensitive: c.IncludeSensitive,
	}

	if p.ActiveTopics != nil {
		next.ActiveTopics = dedupe(p.ActiveTopics)
	}
	if p.ToggleTopic != "" {
		next.ActiveTopics = toggle(next.ActiveTopics, p.ToggleTopic)
	}
	if p.MaxDetail != nil {
		next.MaxDetail = *p.MaxDetail
	}
	if p.IncludeSensitive != nil {
		next.IncludeSensitive = *p.IncludeSensitive
	}

	if err := Validate(next); err != nil {
		return c, err
	}
	return next, nil
}

func toggle(topics []string, topic string) []string {
	out := make([]string, 0, len(topics)+1)
	found := false
	for _, t := range topics {
		if t == topic {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, topic)
	}
	return out
}

func dedupe(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
