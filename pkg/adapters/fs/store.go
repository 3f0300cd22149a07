// Package fs implements a record store on the local filesystem.
// Each record is a Markdown file named after its ID: the body is the file
// content, title and type live in the YAML frontmatter, and fields saved
// through the generic metadata path live under the "fields" key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/formpost/pkg/core"
	"github.com/aretw0/formpost/pkg/git"
)

// DefaultSystemDir is the hidden directory (and lock prefix) of a store.
const DefaultSystemDir = ".formpost"

const lockTimeout = 5 * time.Second

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	AutoInit     bool // git init on Initialize when versioned and not yet a repository
	Versioned    bool // commit every write with git
	MustExist    bool
	ReadOnly     bool
	SystemDir    string
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher errors
}

// Store implements core.RecordStore, core.MetaStore, core.Lister and
// core.Watchable on a directory.
type Store struct {
	Path   string
	git    *git.Client
	config Config

	writeMu sync.Mutex

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
	writes        int
}

// NewStore creates a new filesystem-backed record store.
func NewStore(config Config) *Store {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Store{
		Path:   config.Path,
		git:    git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config: config,
	}
}

// Initialize prepares the directory (and the git repository when versioned).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("record path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("record path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	if !s.config.Versioned || s.config.ReadOnly {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
	}
	if err := s.ensureIgnore(); err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	return nil
}

func (s *Store) ensureIgnore() error {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	entries := []string{s.config.SystemDir + "/", s.config.SystemDir + ".lock"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	out := string(content)
	if len(out) > 0 && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	out += strings.Join(missing, "\n") + "\n"
	return writeFileAtomic(ignorePath, []byte(out), 0644)
}

func (s *Store) filename(id int64) string {
	return strconv.FormatInt(id, 10) + ".md"
}

func (s *Store) read(id int64) (*document, error) {
	f, err := os.Open(filepath.Join(s.Path, s.filename(id)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("record %d: %w", id, core.ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	doc, err := parseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record %d: %w", id, err)
	}
	return doc, nil
}

// write persists doc atomically and commits it when versioned.
func (s *Store) write(ctx context.Context, id int64, doc *document, defaultReason string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	data, err := doc.marshal()
	if err != nil {
		return fmt.Errorf("failed to serialize record %d: %w", id, err)
	}

	name := s.filename(id)
	if s.config.Logger != nil {
		s.config.Logger.Debug("writing record to disk", "id", id, "file", name)
	}
	if err := writeFileAtomic(filepath.Join(s.Path, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
	s.mu.Unlock()

	if !s.config.Versioned {
		return nil
	}

	unlock, err := s.git.Lock(lockTimeout)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := s.git.Add(name); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	if err := s.git.Commit(core.ChangeReason(ctx, defaultReason)); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// Get implements core.RecordStore.
func (s *Store) Get(ctx context.Context, id int64) (core.Record, error) {
	doc, err := s.read(id)
	if err != nil {
		return core.Record{}, err
	}
	return doc.record(id), nil
}

// Create writes a full record, replacing any existing file. Fields stored
// through the generic metadata path are kept.
func (s *Store) Create(ctx context.Context, r core.Record) error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidRecordID, r.ID)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.read(r.ID)
	if errors.Is(err, core.ErrNotFound) {
		doc = &document{Metadata: make(map[string]any)}
	} else if err != nil {
		return err
	}

	doc.Metadata[keyTitle] = r.Title
	if r.Type != "" {
		doc.Metadata[keyType] = r.Type
	} else {
		delete(doc.Metadata, keyType)
	}
	doc.Content = r.Body

	return s.write(ctx, r.ID, doc, fmt.Sprintf("create record %d", r.ID))
}

// Update implements core.RecordStore. Only the set attributes are written;
// a missing record file is created, as SaveFields does.
func (s *Store) Update(ctx context.Context, p core.Patch) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidRecordID, p.ID)
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.read(p.ID)
	if errors.Is(err, core.ErrNotFound) {
		doc = &document{Metadata: make(map[string]any)}
	} else if err != nil {
		return err
	}
	doc.apply(p)

	return s.write(ctx, p.ID, doc, fmt.Sprintf("update record %d", p.ID))
}

// SaveFields implements core.MetaStore. Each remaining submitted field is
// stored under the "fields" frontmatter key; a missing record file is created.
func (s *Store) SaveFields(ctx context.Context, id int64, fields *core.Submission) error {
	if fields.Empty() {
		return nil
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.read(id)
	if errors.Is(err, core.ErrNotFound) {
		doc = &document{Metadata: make(map[string]any)}
	} else if err != nil {
		return err
	}

	m := doc.fields()
	for _, f := range fields.Fields() {
		m[f.Key] = f.Value
	}

	return s.write(ctx, id, doc, fmt.Sprintf("update fields of record %d", id))
}

// Fields returns the fields stored through the generic metadata path.
func (s *Store) Fields(ctx context.Context, id int64) (map[string]string, error) {
	doc, err := s.read(id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if m, ok := doc.Metadata[keyFields].(map[string]any); ok {
		for k, v := range m {
			out[k] = stringOf(v)
		}
	}
	return out, nil
}

// List implements core.Lister. Records are sorted by ID.
func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	matches, err := doublestar.Glob(os.DirFS(s.Path), "*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	var out []core.Record
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := idFromName(m)
		if !ok {
			continue
		}
		r, err := s.Get(ctx, id)
		if err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("failed to read record during list", "id", id, "error", err)
			}
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// idFromName maps "42.md" to 42.
func idFromName(name string) (int64, bool) {
	base := path.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(base, ".md") {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(base, ".md"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

var (
	_ core.RecordStore = (*Store)(nil)
	_ core.MetaStore   = (*Store)(nil)
	_ core.Lister      = (*Store)(nil)
	_ core.Watchable   = (*Store)(nil)
)
