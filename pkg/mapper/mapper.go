// Package mapper implements the title/content mapper: on save it moves the
// values of two configured virtual fields out of a submission and into the
// record's title and body; on load it feeds the record's title and body back
// into those fields.
package mapper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/formpost/pkg/core"
)

// Mapper maps the configured title and content fields onto a record.
type Mapper struct {
	titleName   string
	contentName string
	store       core.RecordStore
	resolver    core.FieldResolver
	logger      *slog.Logger

	mu    sync.Mutex
	stats Stats
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger. A nil logger keeps the mapper silent.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// New creates a Mapper matching on the logical names found in cfg.
func New(cfg core.Config, store core.RecordStore, resolver core.FieldResolver, opts ...Option) *Mapper {
	m := &Mapper{
		titleName:   cfg.Title.Name,
		contentName: cfg.Content.Name,
		store:       store,
		resolver:    resolver,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TitleName returns the logical name mapped onto the record title.
func (m *Mapper) TitleName() string { return m.titleName }

// ContentName returns the logical name mapped onto the record body.
func (m *Mapper) ContentName() string { return m.contentName }

// Result is the outcome of Map.
type Result struct {
	// Residual holds the submitted fields the mapper did not consume.
	Residual *core.Submission
	// Patch carries the attributes to write. Only meaningful if Update is set.
	Patch core.Patch
	// Update is set when at least one configured field was submitted.
	Update bool
	// Consumed lists the consumed field keys, in submission order.
	Consumed []string
}

// Map computes the record patch for a submission without touching the store
// or the submission. Fields are visited in submission order; a field whose
// descriptor name equals the title name goes to the title, otherwise one
// matching the content name goes to the body. When several fields target the
// same attribute the last one wins.
func (m *Mapper) Map(ctx context.Context, id int64, sub *core.Submission) Result {
	res := Result{
		Residual: sub.Clone(),
		Patch:    core.Patch{ID: id},
	}

	for _, f := range sub.Fields() {
		desc, ok := m.resolver.Resolve(ctx, f.Key, id)
		if !ok {
			continue
		}

		switch desc.Name {
		case m.titleName:
			res.Patch.SetTitle(f.Value)
		case m.contentName:
			res.Patch.SetBody(f.Value)
		default:
			continue
		}

		res.Residual.Delete(f.Key)
		res.Consumed = append(res.Consumed, f.Key)
		res.Update = true
	}

	return res
}

// Eligible reports whether a save of record id with sub should be mapped.
// The reason names the failing guard when it is not.
func (m *Mapper) Eligible(ctx context.Context, id int64, sub *core.Submission) (bool, string, error) {
	if core.IsAdmin(ctx) {
		return false, "administrative context", nil
	}
	if sub.Empty() {
		return false, "empty submission", nil
	}

	rec, err := m.store.Get(ctx, id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		// Pending record: it has no type yet and the store creates it on update.
	case err != nil:
		return false, "", fmt.Errorf("record %d: %w", id, err)
	case rec.Type == core.FieldGroupRecordType:
		return false, "field-group record", nil
	}

	return true, "", nil
}

// ProcessTitleContent is the save hook. When the save is eligible it removes
// the consumed fields from sub (which the caller owns and passes on to the
// generic metadata path) and writes a single partial update to the store.
// It always returns id so it can be chained in a save pipeline.
func (m *Mapper) ProcessTitleContent(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
	ok, reason, err := m.Eligible(ctx, id, sub)
	if err != nil {
		return id, err
	}
	if !ok {
		m.count(func(s *Stats) { s.Skipped++ })
		if m.logger != nil {
			m.logger.Debug("skipping title/content mapping", "record", id, "reason", reason)
		}
		return id, nil
	}

	res := m.Map(ctx, id, sub)
	m.count(func(s *Stats) { s.Processed++ })

	for _, key := range res.Consumed {
		sub.Delete(key)
	}

	if !res.Update {
		return id, nil
	}

	if m.logger != nil {
		m.logger.Debug("mapping fields onto record", "record", id, "fields", res.Consumed, "patch", res.Patch.String())
	}

	if err := m.store.Update(ctx, res.Patch); err != nil {
		return id, fmt.Errorf("update record %d: %w", id, err)
	}
	m.count(func(s *Stats) { s.Updated++ })

	return id, nil
}

// LoadTitle is the load hook of the title field. It returns the current title
// of the record referenced by ref. A missing or non-numeric ref passes value
// through unchanged.
func (m *Mapper) LoadTitle(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error) {
	id, ok := ParseRecordID(ref)
	if !ok {
		return value, nil
	}

	rec, err := m.store.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return value, fmt.Errorf("load title of record %d: %w", id, err)
	}
	return rec.Title, nil
}

// LoadContent is the load hook of the content field. It returns the body of
// the record referenced by ref, or value if the record cannot be resolved.
func (m *Mapper) LoadContent(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error) {
	id, ok := ParseRecordID(ref)
	if !ok {
		return value, nil
	}

	rec, err := m.store.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return value, nil
	}
	if err != nil {
		return value, fmt.Errorf("load content of record %d: %w", id, err)
	}
	return rec.Body, nil
}

// ParseRecordID parses a record reference as handed over by a form pipeline.
// Only positive integers are record identifiers.
func ParseRecordID(ref string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (m *Mapper) count(fn func(*Stats)) {
	m.mu.Lock()
	fn(&m.stats)
	m.mu.Unlock()
}
