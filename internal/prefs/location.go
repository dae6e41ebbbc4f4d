package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/storage"
)

// EntryParam is the query parameter carrying the selected entry index.
const EntryParam = "entry"

// Location keeps the selected entry as a query string (entry=12) in a file,
// so a run can resume where the previous one stopped.
type Location struct {
	path string
}

// NewLocation returns a location backed by the file at path.
func NewLocation(path string) *Location {
	return &Location{path: path}
}

func (l *Location) values() url.Values {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return url.Values{}
	}
	v, err := url.ParseQuery(strings.TrimSpace(strings.TrimPrefix(string(data), "?")))
	if err != nil {
		return url.Values{}
	}
	return v
}

// Selected returns the stored entry index, or navigator.None when the file
// is absent or the parameter is missing or not a non-negative integer.
func (l *Location) Selected() int {
	raw := l.values().Get(EntryParam)
	if raw == "" {
		return navigator.None
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return navigator.None
	}
	return n
}

// Set stores index, or removes the parameter when index is navigator.None.
// Other parameters in the file are kept.
func (l *Location) Set(index int) error {
	v := l.values()
	if index == navigator.None {
		v.Del(EntryParam)
	} else {
		v.Set(EntryParam, strconv.Itoa(index))
	}

	if len(v) == 0 {
		if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: clearing location: %v", storage.ErrStorage, err)
		}
		return nil
	}
	return storage.WriteFileAtomic(l.path, []byte(v.Encode()+"\n"))
}

// StateChanged rewrites the location when the selection moved.
func (l *Location) StateChanged(prev, next navigator.DisplayState) error {
	if prev.Selection.Index == next.Selection.Index {
		return nil
	}
	return l.Set(next.Selection.Index)
}
