// Package sqlite stores raw records in a libSQL database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// FileName is the database file created inside the data directory.
const FileName = "diary.db"

// Store implements storage.Backend using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database in dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, FileName)
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id            TEXT PRIMARY KEY,
			seq           INTEGER NOT NULL,
			date          INTEGER,
			nsfw          INTEGER NOT NULL DEFAULT 0,
			ffs           INTEGER NOT NULL DEFAULT 0,
			srs           INTEGER NOT NULL DEFAULT 0,
			depression    INTEGER NOT NULL DEFAULT 0,
			substance_use INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
		CREATE TABLE IF NOT EXISTS components (
			entry_id TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			score    REAL,
			text     TEXT,
			PRIMARY KEY (entry_id, position)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every record, components in their stored order.
func (s *Store) Load(ctx context.Context) ([]entry.Raw, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, nsfw, ffs, srs, depression, substance_use FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	raws := []entry.Raw{}
	byID := make(map[string]int)
	for rows.Next() {
		var (
			id   string
			date sql.NullInt64
			r    entry.Raw
		)
		if err := rows.Scan(&id, &date, &r.Properties.NSFW,
			&r.Properties.Tags.FFS, &r.Properties.Tags.SRS,
			&r.Properties.Tags.Depression, &r.Properties.Tags.SubstanceUse); err != nil {
			return nil, fmt.Errorf("%w: scanning entry: %v", storage.ErrStorage, err)
		}
		if date.Valid {
			r.Date = []int64{date.Int64}
		}
		byID[id] = len(raws)
		raws = append(raws, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}

	comps, err := s.db.QueryContext(ctx,
		`SELECT entry_id, score, text FROM components ORDER BY entry_id, position`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing components: %v", storage.ErrStorage, err)
	}
	defer comps.Close()

	for comps.Next() {
		var (
			id    string
			score sql.NullFloat64
			text  sql.NullString
		)
		if err := comps.Scan(&id, &score, &text); err != nil {
			return nil, fmt.Errorf("%w: scanning component: %v", storage.ErrStorage, err)
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		raws[i].Components = append(raws[i].Components, entry.Component{
			Score: score.Float64,
			Text:  text.String,
		})
	}
	if err := comps.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing components: %v", storage.ErrStorage, err)
	}
	return raws, nil
}

// Save replaces every stored record with raws in one transaction.
func (s *Store) Save(ctx context.Context, raws []entry.Raw) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM components"); err != nil {
		return fmt.Errorf("%w: clearing components: %v", storage.ErrStorage, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("%w: clearing entries: %v", storage.ErrStorage, err)
	}

	for seq, r := range raws {
		id, err := entry.NewID()
		if err != nil {
			return fmt.Errorf("%w: generating ID: %v", storage.ErrStorage, err)
		}
		var date sql.NullInt64
		if len(r.Date) > 0 {
			date = sql.NullInt64{Int64: r.Date[0], Valid: true}
		}
		tags := r.Properties.Tags
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entries (id, seq, date, nsfw, ffs, srs, depression, substance_use)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seq, date, flag(r.Properties.NSFW), flag(tags.FFS), flag(tags.SRS),
			flag(tags.Depression), flag(tags.SubstanceUse),
		); err != nil {
			return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
		}

		for pos, c := range r.Components {
			var score sql.NullFloat64
			if c.Disclosed() {
				score = sql.NullFloat64{Float64: c.Score, Valid: true}
			}
			var text sql.NullString
			if c.Text != "" {
				text = sql.NullString{String: c.Text, Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO components (entry_id, position, score, text) VALUES (?, ?, ?, ?)",
				id, pos, score, text,
			); err != nil {
				return fmt.Errorf("%w: inserting component: %v", storage.ErrStorage, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
