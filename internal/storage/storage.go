// Package storage defines where raw journal records come from and where they
// can be written back to. The backends live in subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/aphreditto/diary/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound = errors.New("entry source not found")
	ErrStorage  = errors.New("storage error")
)

// Source yields every raw record it holds. Order is not significant;
// entry.Load sorts.
type Source interface {
	Load(ctx context.Context) ([]entry.Raw, error)
}

// Sink replaces the stored records with raws.
type Sink interface {
	Save(ctx context.Context, raws []entry.Raw) error
}

// Backend is a readable, writable, closable store.
type Backend interface {
	Source
	Sink
	Close() error
}

// Kinds lists the backend names accepted by the source setting.
var Kinds = []string{"json", "markdown", "sqlite"}

// LoadEntries reads src and converts its records into sorted entries.
func LoadEntries(ctx context.Context, src Source, opts ...entry.Option) ([]entry.Entry, error) {
	raws, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return entry.Load(raws, opts...)
}
