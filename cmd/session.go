package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/filter"
	"github.com/aphreditto/diary/internal/navigator"
	"github.com/aphreditto/diary/internal/prefs"
	"github.com/aphreditto/diary/internal/storage"
	"github.com/aphreditto/diary/internal/storage/jsonfile"
	"github.com/aphreditto/diary/internal/storage/markdown"
	"github.com/aphreditto/diary/internal/storage/sqlite"
	"github.com/aphreditto/diary/internal/window"
)

func validKind(kind string) bool {
	return slices.Contains(storage.Kinds, kind)
}

// openBackend opens the entry store of the given kind at path.
func openBackend(kind, path string) (storage.Backend, error) {
	switch kind {
	case "json":
		return jsonfile.New(path), nil
	case "markdown":
		s, err := markdown.New(path)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown source: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite source: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown source %q (want one of %v)", kind, storage.Kinds)
}

// session is a loaded entry store with a coordinator restored from the
// saved preferences and location.
type session struct {
	backend  storage.Backend
	nav      *navigator.Coordinator
	prefs    *prefs.Store
	location *prefs.Location
}

// openSession loads the configured source. With persist set, every state
// change is written back to the preference store and the location file.
func openSession(ctx context.Context, persist bool) (*session, error) {
	backend, err := openBackend(appConfig.Source, appConfig.ResolvedSourcePath())
	if err != nil {
		return nil, err
	}

	epoch, err := appConfig.EpochTime(time.Local)
	if err != nil {
		backend.Close()
		return nil, err
	}
	var opts []entry.Option
	if !epoch.IsZero() {
		opts = append(opts, entry.WithEpoch(epoch))
	}
	entries, err := storage.LoadEntries(ctx, backend, opts...)
	if err != nil {
		backend.Close()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w (run `diary seed` or `diary import` first)", err)
		}
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	scale, err := window.ParseScale(appConfig.Scale)
	if err != nil {
		logger.Warn("ignoring configured scale", "scale", appConfig.Scale, "error", err)
		scale = window.Week
	}

	s := &session{
		backend:  backend,
		prefs:    prefs.Open(filepath.Join(appConfig.DataDir, "prefs"), logger),
		location: prefs.NewLocation(filepath.Join(appConfig.DataDir, "location")),
	}
	st := navigator.DefaultState()
	st.Filter, st.Scale = s.prefs.Read(filter.Default(), scale)
	st.Selection.Index = s.location.Selected()

	navOpts := []navigator.Option{navigator.WithState(st), navigator.WithLogger(logger)}
	if persist {
		navOpts = append(navOpts, navigator.WithListener(s.prefs), navigator.WithListener(s.location))
	}
	s.nav = navigator.New(entries, navOpts...)
	logger.Debug("session opened", "source", appConfig.Source, "entries", len(entries), "scale", st.Scale)
	return s, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}
