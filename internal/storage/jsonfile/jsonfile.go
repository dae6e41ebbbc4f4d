// Package jsonfile reads and writes the single-document entry format:
//
//	{"entries": [{"date": [20230123101500], "entry": [[3, null, "text"]], "properties": {...}}]}
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
)

// Document is the on-disk shape.
type Document struct {
	Entries []entry.Raw `json:"entries"`
}

// Store is a JSON document on disk.
type Store struct {
	path string
}

// New returns a store for the document at path. The file need not exist
// until Load is called.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op for the JSON backend.
func (s *Store) Close() error {
	return nil
}

// Load reads every record of the document.
func (s *Store) Load(ctx context.Context) ([]entry.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrStorage, s.path, err)
	}
	return Decode(data)
}

// Save replaces the document with raws.
func (s *Store) Save(ctx context.Context, raws []entry.Raw) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(raws)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(s.path, data)
}

// Decode parses a document.
func Decode(data []byte) ([]entry.Raw, error) {
	var doc Document
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: decoding entries document: %v", storage.ErrStorage, err)
	}
	if doc.Entries == nil {
		doc.Entries = []entry.Raw{}
	}
	return doc.Entries, nil
}

// Encode renders raws as an indented document.
func Encode(raws []entry.Raw) ([]byte, error) {
	if raws == nil {
		raws = []entry.Raw{}
	}
	data, err := json.MarshalIndent(Document{Entries: raws}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encoding entries document: %v", storage.ErrStorage, err)
	}
	return append(data, '\n'), nil
}
