package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
)

func TestShowFullContent(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, 3, false, false); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	out := stripANSI(buf.String())
	for _, want := range []string{"Entry: 3", "Entry 3", "Paragraph D", "(day 21)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShowTextOnly(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, 0, false, true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Paragraph A\n\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestShowJSON(t *testing.T) {
	setupTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, 2, false, false); err != nil {
		t.Fatal(err)
	}
	var e entry.Entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if e.Index != 2 || !e.HasTopic(entry.TopicSRS) {
		t.Errorf("entry = %+v", e)
	}
}

func TestShowNotFound(t *testing.T) {
	setupTestEnv(t)
	err := showRun(context.Background(), &bytes.Buffer{}, 42, false, false)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestShowSelectIsSaved(t *testing.T) {
	setupTestEnv(t)
	if err := showRun(context.Background(), &bytes.Buffer{}, 3, true, true); err != nil {
		t.Fatal(err)
	}

	data, err := buildStatusData(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if data.Selected != 3 {
		t.Errorf("saved selection = %d, want 3", data.Selected)
	}
	if data.Page != 4 {
		t.Errorf("browser should reopen on week 4, got page %d", data.Page)
	}
}
