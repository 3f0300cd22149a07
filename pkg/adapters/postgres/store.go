// Package postgres implements the record store on PostgreSQL.
//
// Records live in a table with the columns id, type, title and body; type,
// title and body are NOT NULL DEFAULT ''.
// Fields saved through the generic metadata path live in a key/value table
// keyed by (record_id, key).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/aretw0/formpost/pkg/core"
)

// Default table names.
const (
	DefaultRecordsTable = "records"
	DefaultFieldsTable  = "record_fields"
)

// Column names.
const (
	colID       = "id"
	colType     = "type"
	colTitle    = "title"
	colBody     = "body"
	colRecordID = "record_id"
	colKey      = "key"
	colValue    = "value"
)

// Config holds the configuration for the SQL store.
type Config struct {
	RecordsTable string
	FieldsTable  string
	Logger       *slog.Logger
}

// Store implements core.RecordStore, core.MetaStore and core.Lister.
type Store struct {
	q       Querier
	builder squirrel.StatementBuilderType
	config  Config
}

// NewStore creates a store running its statements on q.
func NewStore(q Querier, config Config) *Store {
	if config.RecordsTable == "" {
		config.RecordsTable = DefaultRecordsTable
	}
	if config.FieldsTable == "" {
		config.FieldsTable = DefaultFieldsTable
	}
	return &Store{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		config:  config,
	}
}

// Get implements core.RecordStore.
func (s *Store) Get(ctx context.Context, id int64) (core.Record, error) {
	query, args, err := s.builder.
		Select(colID, colType, colTitle, colBody).
		From(s.config.RecordsTable).
		Where(squirrel.Eq{colID: id}).
		ToSql()
	if err != nil {
		return core.Record{}, fmt.Errorf("build query: %w", err)
	}

	var r core.Record
	err = s.q.QueryRow(ctx, query, args...).Scan(&r.ID, &r.Type, &r.Title, &r.Body)
	if err != nil {
		return core.Record{}, mapError(err, id)
	}
	return r, nil
}

// Update implements core.RecordStore as an upsert: only the set attributes
// are written, and a missing record is inserted with the column defaults for
// the rest. An empty patch issues no statement.
func (s *Store) Update(ctx context.Context, p core.Patch) error {
	if p.Empty() {
		return nil
	}

	columns := []string{colID}
	values := []any{p.ID}
	var set []string
	if p.Title != nil {
		columns = append(columns, colTitle)
		values = append(values, *p.Title)
		set = append(set, colTitle+" = EXCLUDED."+colTitle)
	}
	if p.Body != nil {
		columns = append(columns, colBody)
		values = append(values, *p.Body)
		set = append(set, colBody+" = EXCLUDED."+colBody)
	}

	query, args, err := s.builder.
		Insert(s.config.RecordsTable).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (" + colID + ") DO UPDATE SET " + strings.Join(set, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("updating record", "id", p.ID, "sql", query)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, p.ID)
	}
	return nil
}

// SaveFields implements core.MetaStore with one upsert per field.
func (s *Store) SaveFields(ctx context.Context, id int64, fields *core.Submission) error {
	if fields.Empty() {
		return nil
	}

	insert := s.builder.
		Insert(s.config.FieldsTable).
		Columns(colRecordID, colKey, colValue)
	for _, f := range fields.Fields() {
		insert = insert.Values(id, f.Key, f.Value)
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (" + colRecordID + ", " + colKey + ") DO UPDATE SET " + colValue + " = EXCLUDED." + colValue).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, id)
	}
	return nil
}

// List implements core.Lister.
func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	query, args, err := s.builder.
		Select(colID, colType, colTitle, colBody).
		From(s.config.RecordsTable).
		OrderBy(colID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Record, error) {
		var r core.Record
		err := row.Scan(&r.ID, &r.Type, &r.Title, &r.Body)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func mapError(err error, id int64) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("record %d: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("record %d: %w", id, core.ErrNotFound)
	}

	return fmt.Errorf("record %d: %w", id, err)
}

var (
	_ core.RecordStore = (*Store)(nil)
	_ core.MetaStore   = (*Store)(nil)
	_ core.Lister      = (*Store)(nil)
)
