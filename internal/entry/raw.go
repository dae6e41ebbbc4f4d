package entry

import (
	"encoding/json"
	"fmt"
)

// Raw is an entry record as produced by a storage source, before Load
// derives dates, detail scores and topics from it.
type Raw struct {
	Date       []int64     `json:"date"`
	Components []Component `json:"entry"`
	Properties Properties  `json:"properties"`
}

// Component is one disclosed piece of an entry. A zero Score means the
// component carries no score.
type Component struct {
	Score float64
	Text  string
}

// Properties carries the flags of a raw record.
type Properties struct {
	NSFW bool `json:"nsfw"`
	Tags Tags `json:"tags"`
}

// Tags are the boolean topic tags of a raw record.
type Tags struct {
	FFS          bool `json:"ffs"`
	SRS          bool `json:"srs"`
	Depression   bool `json:"depression"`
	SubstanceUse bool `json:"substanceUse"`
}

// UnmarshalJSON decodes the tuple form [score, reserved, text]. Either end may
// be null or missing.
func (c *Component) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("component must be an array: %w", err)
	}
	*c = Component{}
	if len(parts) > 0 && string(parts[0]) != "null" {
		var score float64
		if err := json.Unmarshal(parts[0], &score); err != nil {
			return fmt.Errorf("component score: %w", err)
		}
		c.Score = score
	}
	if len(parts) > 2 && string(parts[2]) != "null" {
		var text any
		if err := json.Unmarshal(parts[2], &text); err != nil {
			return fmt.Errorf("component text: %w", err)
		}
		switch v := text.(type) {
		case string:
			c.Text = v
		case nil:
		default:
			c.Text = fmt.Sprint(v)
		}
	}
	return nil
}

// MarshalJSON encodes the component in the same tuple form.
func (c Component) MarshalJSON() ([]byte, error) {
	var score, text any
	if c.Score != 0 {
		score = c.Score
	}
	if c.Text != "" {
		text = c.Text
	}
	return json.Marshal([]any{score, nil, text})
}

// Disclosed reports whether the component carries a score.
func (c Component) Disclosed() bool {
	return c.Score != 0
}
