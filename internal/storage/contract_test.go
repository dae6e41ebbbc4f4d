package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
	"github.com/aphreditto/diary/internal/storage/jsonfile"
	"github.com/aphreditto/diary/internal/storage/markdown"
	"github.com/aphreditto/diary/internal/storage/sqlite"
)

type storageFactory func(t *testing.T) storage.Backend

func jsonFactory(t *testing.T) storage.Backend {
	t.Helper()
	s := jsonfile.New(filepath.Join(t.TempDir(), "entries.json"))
	if err := s.Save(context.Background(), nil); err != nil {
		t.Fatalf("creating json storage: %v", err)
	}
	return s
}

func markdownFactory(t *testing.T) storage.Backend {
	t.Helper()
	s, err := markdown.New(filepath.Join(t.TempDir(), "entries"))
	if err != nil {
		t.Fatalf("creating markdown storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Backend {
	t.Helper()
	s, err := sqlite.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRaws() []entry.Raw {
	return []entry.Raw{
		{
			Date: []int64{20230126090000},
			Components: []entry.Component{
				{Score: 3, Text: "Second dose today."},
				{Text: "Felt calmer in the evening."},
			},
			Properties: entry.Properties{Tags: entry.Tags{FFS: true}},
		},
		{
			Date:       []int64{20230123101500},
			Components: []entry.Component{{Score: 5, Text: "Consultation booked."}},
			Properties: entry.Properties{NSFW: true, Tags: entry.Tags{SRS: true, SubstanceUse: true}},
		},
		{
			Date:       []int64{20230124230000},
			Properties: entry.Properties{Tags: entry.Tags{Depression: true}},
		},
	}
}

func load(t *testing.T, s storage.Source) []entry.Entry {
	t.Helper()
	entries, err := storage.LoadEntries(context.Background(), s)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	return entries
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Load empty", func(t *testing.T) {
			s := factory(t)
			raws, err := s.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(raws) != 0 {
				t.Errorf("expected no records, got %d", len(raws))
			}
		})

		t.Run("Save and Load", func(t *testing.T) {
			s := factory(t)
			want, err := entry.Load(sampleRaws())
			if err != nil {
				t.Fatalf("entry.Load: %v", err)
			}
			if err := s.Save(context.Background(), sampleRaws()); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got := load(t, s)
			if len(got) != len(want) {
				t.Fatalf("expected %d entries, got %d", len(want), len(got))
			}
			for i := range want {
				if !got[i].Date.Equal(want[i].Date) {
					t.Errorf("entry %d: date = %v, want %v", i, got[i].Date, want[i].Date)
				}
				if got[i].Detail != want[i].Detail {
					t.Errorf("entry %d: detail = %v, want %v", i, got[i].Detail, want[i].Detail)
				}
				if got[i].Sensitive != want[i].Sensitive {
					t.Errorf("entry %d: sensitive = %v", i, got[i].Sensitive)
				}
				if len(got[i].Topics) != len(want[i].Topics) {
					t.Errorf("entry %d: topics = %v, want %v", i, got[i].Topics, want[i].Topics)
				}
				if len(got[i].Paragraphs) != len(want[i].Paragraphs) {
					t.Errorf("entry %d: paragraphs = %q, want %q", i, got[i].Paragraphs, want[i].Paragraphs)
					continue
				}
				for j := range want[i].Paragraphs {
					if got[i].Paragraphs[j] != want[i].Paragraphs[j] {
						t.Errorf("entry %d paragraph %d = %q, want %q", i, j, got[i].Paragraphs[j], want[i].Paragraphs[j])
					}
				}
			}
		})

		t.Run("Save replaces", func(t *testing.T) {
			s := factory(t)
			if err := s.Save(context.Background(), sampleRaws()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if err := s.Save(context.Background(), sampleRaws()[:1]); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if got := load(t, s); len(got) != 1 {
				t.Errorf("expected 1 entry after replace, got %d", len(got))
			}
		})

		t.Run("Missing date fails load", func(t *testing.T) {
			s := factory(t)
			raws := append(sampleRaws(), entry.Raw{})
			if err := s.Save(context.Background(), raws); err != nil {
				t.Fatalf("Save: %v", err)
			}
			_, err := storage.LoadEntries(context.Background(), s)
			if !errors.Is(err, entry.ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})

		t.Run("Cancelled context", func(t *testing.T) {
			s := factory(t)
			if err := s.Save(context.Background(), sampleRaws()); err != nil {
				t.Fatalf("Save: %v", err)
			}
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if _, err := s.Load(ctx); err == nil {
				t.Error("expected error from cancelled context")
			}
		})
	})
}

func TestStorageContract(t *testing.T) {
	runContractTests(t, "JSON", jsonFactory)
	runContractTests(t, "Markdown", markdownFactory)
	runContractTests(t, "SQLite", sqliteFactory)
}

func TestJSONMissingFile(t *testing.T) {
	s := jsonfile.New(filepath.Join(t.TempDir(), "absent.json"))
	_, err := s.Load(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONDecodeOriginalDocument(t *testing.T) {
	doc := `{"entries":[
		{"date":[20230123101500],"entry":[[4,null,"First."],[null,null,"Second."],[0,null,null]],
		 "properties":{"nsfw":false,"tags":{"ffs":true,"substanceUse":true}}}
	]}`
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	entries := load(t, jsonfile.New(path))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Detail != 4 {
		t.Errorf("detail = %v, want 4", e.Detail)
	}
	if len(e.Paragraphs) != 2 {
		t.Errorf("paragraphs = %q", e.Paragraphs)
	}
	if !e.HasTopic(entry.TopicFFS) || !e.HasTopic(entry.TopicSubstanceUse) {
		t.Errorf("topics = %v", e.Topics)
	}
}

func TestMarkdownLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "entries")
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), sampleRaws()); err != nil {
		t.Fatal(err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "2023", "01", "*.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Errorf("expected 3 files under 2023/01, got %v", matches)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.txt")
	if err := storage.WriteFileAtomic(path, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := storage.WriteFileAtomic(path, []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q", data)
	}
	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}
