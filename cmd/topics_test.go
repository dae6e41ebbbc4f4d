package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
)

func TestTopicsListsCatalogue(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := topicsRun(context.Background(), &buf, topicsOptions{}); err != nil {
		t.Fatalf("topicsRun: %v", err)
	}
	out := stripANSI(buf.String())
	for _, topic := range entry.Topics {
		if !strings.Contains(out, topic.Label) {
			t.Errorf("missing topic %q", topic.Label)
		}
	}
	if !strings.Contains(out, "nsfw included: false") {
		t.Errorf("missing filter summary:\n%s", out)
	}
}

func TestTopicsChangesAreSaved(t *testing.T) {
	setupTestEnv(t)

	detail := 40.0
	sensitive := true
	opts := topicsOptions{
		only:      []string{entry.TopicHRT, entry.TopicSRS},
		toggle:    []string{entry.TopicSRS},
		detail:    &detail,
		sensitive: &sensitive,
	}
	if err := topicsRun(context.Background(), &bytes.Buffer{}, opts); err != nil {
		t.Fatalf("topicsRun: %v", err)
	}

	data, err := buildStatusData(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Topics) != 1 || data.Topics[0] != entry.TopicHRT {
		t.Errorf("saved topics = %v, want [hrt]", data.Topics)
	}
	if data.Detail != 40 || !data.Sensitive {
		t.Errorf("saved detail %g nsfw %t", data.Detail, data.Sensitive)
	}

	if err := topicsRun(context.Background(), &bytes.Buffer{}, topicsOptions{reset: true}); err != nil {
		t.Fatal(err)
	}
	data, _ = buildStatusData(context.Background())
	if len(data.Topics) != len(entry.Topics) || data.Detail != filter.MaxDetail || data.Sensitive {
		t.Errorf("reset did not restore defaults: %+v", data)
	}
}

func TestTopicsRejectsEmptySet(t *testing.T) {
	setupTestEnv(t)
	opts := topicsOptions{only: []string{entry.TopicHRT}, toggle: []string{entry.TopicHRT}}
	err := topicsRun(context.Background(), &bytes.Buffer{}, opts)
	if !errors.Is(err, filter.ErrEmptyTopics) {
		t.Errorf("expected ErrEmptyTopics, got %v", err)
	}
}

func TestTopicsRejectsDetailOutOfRange(t *testing.T) {
	setupTestEnv(t)
	detail := 0.0
	err := topicsRun(context.Background(), &bytes.Buffer{}, topicsOptions{detail: &detail})
	if !errors.Is(err, filter.ErrDetailRange) {
		t.Errorf("expected ErrDetailRange, got %v", err)
	}
}
