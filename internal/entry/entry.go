package entry

import (
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Topic keys understood by the filter bar.
const (
	TopicHRT          = "hrt"
	TopicFFS          = "ffs"
	TopicSRS          = "srs"
	TopicDomperidone  = "domperidone"
	TopicIbutamoren   = "ibutamoren"
	TopicDepression   = "depression"
	TopicComingOut    = "coming-out"
	TopicSubstanceUse = "substance-use"
)

// TopicInfo pairs a topic key with its display label.
type TopicInfo struct {
	Label string `json:"label"`
	Key   string `json:"key"`
}

// Topics is the ordered topic catalogue shown in the navigation bar.
var Topics = []TopicInfo{
	{Label: "HRT", Key: TopicHRT},
	{Label: "FFS", Key: TopicFFS},
	{Label: "SRS", Key: TopicSRS},
	{Label: "Domperidone", Key: TopicDomperidone},
	{Label: "Ibutamoren", Key: TopicIbutamoren},
	{Label: "Depression", Key: TopicDepression},
	{Label: "Coming Out", Key: TopicComingOut},
	{Label: "Substance Use", Key: TopicSubstanceUse},
}

// TopicKeys returns the keys of the topic catalogue in display order.
func TopicKeys() []string {
	keys := make([]string, len(Topics))
	for i, t := range Topics {
		keys[i] = t.Key
	}
	return keys
}

// Entry is a single loaded journal entry. Entries are immutable after Load.
type Entry struct {
	Index      int       `json:"index"`
	Date       time.Time `json:"date"`
	DayOffset  int       `json:"day"`
	Title      string    `json:"title"`
	Paragraphs []string  `json:"text"`
	Topics     []string  `json:"topics"`
	Detail     float64   `json:"detail"`
	Sensitive  bool      `json:"nsfw"`
}

// NewID generates a new nanoid for stored records.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// HasTopic reports whether the entry is tagged with the given topic.
func (e *Entry) HasTopic(topic string) bool {
	for _, t := range e.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Preview returns a truncated single-line preview of the first paragraph.
func (e *Entry) Preview(maxLen int) string {
	if len(e.Paragraphs) == 0 {
		return ""
	}
	content := strings.ReplaceAll(e.Paragraphs[0], "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + " …"
}
