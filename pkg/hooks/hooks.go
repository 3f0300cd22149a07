// Package hooks is the registration table the host pipelines dispatch
// through. Handlers are keyed by event kind and, for field events, by the
// logical field name, so dispatch is a map lookup rather than a string built
// at call time.
package hooks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/formpost/pkg/core"
)

// DefaultPriority is the priority every built-in handler registers with.
const DefaultPriority = 10

// Kind is a lifecycle event handlers can be attached to.
type Kind string

const (
	KindInit      Kind = "init"
	KindSave      Kind = "pre_save_post"
	KindLoadValue Kind = "load_value"
)

// Key identifies a handler list.
type Key struct {
	Kind Kind
	Name string // logical field name, empty for record-level events
}

func (k Key) String() string {
	if k.Name == "" {
		return string(k.Kind)
	}
	return fmt.Sprintf("%s/name=%s", k.Kind, k.Name)
}

// InitFunc runs once when the table is initialized.
type InitFunc func(ctx context.Context) error

// SaveFunc filters a record save. It receives the record ID and the
// submission (owned by the caller, may be mutated) and returns the record ID
// handed to the next handler.
type SaveFunc func(ctx context.Context, id int64, sub *core.Submission) (int64, error)

// LoadFunc filters the value loaded into a field of the edit form.
type LoadFunc func(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error)

type entry struct {
	priority int
	seq      int
	init     InitFunc
	save     SaveFunc
	load     LoadFunc
}

// Table holds the registered handlers.
type Table struct {
	mu      sync.RWMutex
	entries map[Key][]entry
	seq     int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[Key][]entry)}
}

func (t *Table) add(key Key, e entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	e.seq = t.seq
	list := append(t.entries[key], e)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
	t.entries[key] = list
}

func (t *Table) snapshot(key Key) []entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]entry(nil), t.entries[key]...)
}

// OnInit registers an initialization handler.
func (t *Table) OnInit(priority int, fn InitFunc) {
	t.add(Key{Kind: KindInit}, entry{priority: priority, init: fn})
}

// OnSave registers a save handler.
func (t *Table) OnSave(priority int, fn SaveFunc) {
	t.add(Key{Kind: KindSave}, entry{priority: priority, save: fn})
}

// OnLoadValue registers a load handler for the field with the given logical name.
func (t *Table) OnLoadValue(name string, priority int, fn LoadFunc) {
	t.add(Key{Kind: KindLoadValue, Name: name}, entry{priority: priority, load: fn})
}

// Init runs the initialization handlers. Handlers may register further
// handlers; those registered on KindInit during the run are not executed.
func (t *Table) Init(ctx context.Context) error {
	for _, e := range t.snapshot(Key{Kind: KindInit}) {
		if err := e.init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Save runs the save handlers in order, chaining the record ID.
func (t *Table) Save(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
	for _, e := range t.snapshot(Key{Kind: KindSave}) {
		next, err := e.save(ctx, id, sub)
		if err != nil {
			return id, err
		}
		id = next
	}
	return id, nil
}

// LoadValue runs the load handlers registered for field.Name, chaining the value.
// Without handlers the value is returned as is.
func (t *Table) LoadValue(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error) {
	for _, e := range t.snapshot(Key{Kind: KindLoadValue, Name: field.Name}) {
		next, err := e.load(ctx, value, ref, field)
		if err != nil {
			return value, err
		}
		value = next
	}
	return value, nil
}

// Len returns the number of handlers registered under key.
func (t *Table) Len(key Key) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries[key])
}

// Keys returns the keys that have at least one handler, sorted by name.
func (t *Table) Keys() []Key {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
