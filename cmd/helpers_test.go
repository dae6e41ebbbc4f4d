package cmd

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aphreditto/diary/internal/config"
	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage/jsonfile"
)

// sampleRaws returns five records a week apart starting Sunday 2023-01-01.
// Record 2 is tagged srs and record 4 is nsfw.
func sampleRaws() []entry.Raw {
	start := time.Date(2023, 1, 1, 10, 0, 0, 0, time.Local)
	raws := make([]entry.Raw, 5)
	for i := range raws {
		raws[i] = entry.Raw{
			Date:       []int64{entry.FormatDate(start.AddDate(0, 0, 7*i))},
			Components: []entry.Component{{Score: 20, Text: "Paragraph " + string(rune('A'+i))}},
		}
	}
	raws[2].Properties.Tags.SRS = true
	raws[4].Properties.NSFW = true
	return raws
}

// setupTestEnv points the commands at a fresh data directory holding a JSON
// source with sampleRaws.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	appConfig = &config.Config{
		Source:   "json",
		DataDir:  dir,
		Scale:    "week",
		LogLevel: "error",
		MaxWidth: 100,
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	jsonOutput = false

	if err := jsonfile.New(filepath.Join(dir, "entries.json")).Save(context.Background(), sampleRaws()); err != nil {
		t.Fatalf("writing sample source: %v", err)
	}
	return dir
}

func yes(string) (bool, error) { return true, nil }

func no(string) (bool, error) { return false, nil }
