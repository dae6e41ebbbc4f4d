// Package markdown stores raw records as Markdown files with YAML
// front-matter, one file per record under YYYY/MM/.
//
// The file form is normalised: disclosed scores go to the front-matter and
// component texts become blank-line separated paragraphs. Pairing between a
// score and a text is not kept, which does not change the derived entry.
package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/aphreditto/diary/internal/entry"
	"github.com/aphreditto/diary/internal/storage"
	"gopkg.in/yaml.v3"
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n+`)

// Store is a directory tree of Markdown entry files.
type Store struct {
	baseDir string
}

// New creates the store directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: dir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

type frontMatter struct {
	Date   *int64    `yaml:"date,omitempty"`
	NSFW   bool      `yaml:"nsfw"`
	Tags   entryTags `yaml:"tags"`
	Scores []float64 `yaml:"scores,omitempty"`
}

type entryTags struct {
	FFS          bool `yaml:"ffs"`
	SRS          bool `yaml:"srs"`
	Depression   bool `yaml:"depression"`
	SubstanceUse bool `yaml:"substanceUse"`
}

func (s *Store) recordPath(r entry.Raw, id string) string {
	dir := "undated"
	if len(r.Date) > 0 {
		if digits := strconv.FormatInt(r.Date[0], 10); len(digits) == 14 {
			dir = filepath.Join(digits[:4], digits[4:6])
		}
	}
	return filepath.Join(s.baseDir, dir, id+".md")
}

// Marshal renders one record as a Markdown document.
func Marshal(r entry.Raw) ([]byte, error) {
	fm := frontMatter{
		NSFW: r.Properties.NSFW,
		Tags: entryTags(r.Properties.Tags),
	}
	if len(r.Date) > 0 {
		d := r.Date[0]
		fm.Date = &d
	}
	var paras []string
	for _, c := range r.Components {
		if c.Disclosed() {
			fm.Scores = append(fm.Scores, c.Score)
		}
		if text := normaliseText(c.Text); text != "" {
			paras = append(paras, text)
		}
	}

	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	b.WriteString("---\n")
	for _, p := range paras {
		b.WriteString("\n")
		b.WriteString(p)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// Unmarshal parses a document written by Marshal.
func Unmarshal(data []byte) (entry.Raw, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Raw{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	r := entry.Raw{
		Properties: entry.Properties{
			NSFW: fm.NSFW,
			Tags: entry.Tags(fm.Tags),
		},
	}
	if fm.Date != nil {
		r.Date = []int64{*fm.Date}
	}

	paras := splitParagraphs(string(body))
	n := max(len(paras), len(fm.Scores))
	for i := 0; i < n; i++ {
		var c entry.Component
		if i < len(fm.Scores) {
			c.Score = fm.Scores[i]
		}
		if i < len(paras) {
			c.Text = paras[i]
		}
		r.Components = append(r.Components, c)
	}
	return r, nil
}

func normaliseText(s string) string {
	return blankLines.ReplaceAllString(strings.TrimSpace(s), "\n")
}

func splitParagraphs(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	var out []string
	for _, p := range blankLines.Split(body, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads every entry file below the store directory. Files are read in
// path order; malformed files fail the load.
func (s *Store) Load(ctx context.Context) ([]entry.Raw, error) {
	paths, err := s.files()
	if err != nil {
		return nil, err
	}

	raws := make([]entry.Raw, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
		}
		r, err := Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		raws = append(raws, r)
	}
	return raws, nil
}

// Save replaces the tree with one file per record.
func (s *Store) Save(ctx context.Context, raws []entry.Raw) error {
	existing, err := s.files()
	if err != nil {
		return err
	}
	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: removing file: %v", storage.ErrStorage, err)
		}
	}

	for _, r := range raws {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := entry.NewID()
		if err != nil {
			return fmt.Errorf("%w: generating ID: %v", storage.ErrStorage, err)
		}
		data, err := Marshal(r)
		if err != nil {
			return err
		}
		if err := storage.WriteFileAtomic(s.recordPath(r, id), data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) files() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	sort.Strings(paths)
	return paths, nil
}
