package fieldgroup

import (
	"context"
	"sync"

	"github.com/aretw0/formpost/pkg/core"
)

// Registry is an in-memory field-definition registry.
// Field keys are unique across groups; a later registration replaces an
// earlier one with the same key.
type Registry struct {
	mu     sync.RWMutex
	groups []Group
	byKey  map[string]core.FieldDescriptor
	byName map[string]core.FieldDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]core.FieldDescriptor),
		byName: make(map[string]core.FieldDescriptor),
	}
}

// Register adds or replaces a group (matched by key) and indexes its fields.
func (r *Registry) Register(g Group) {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := false
	for i := range r.groups {
		if r.groups[i].Key == g.Key {
			r.groups[i] = g
			replaced = true
			break
		}
	}
	if !replaced {
		r.groups = append(r.groups, g)
	}

	for _, f := range g.Fields {
		r.index(f.Descriptor())
	}
}

// Define registers a standalone field outside any group.
func (r *Registry) Define(d core.FieldDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index(d)
}

func (r *Registry) index(d core.FieldDescriptor) {
	if d.Key != "" {
		r.byKey[d.Key] = d
	}
	if d.Name != "" {
		r.byName[d.Name] = d
	}
}

// Resolve implements core.FieldResolver. The selector is looked up as a
// field key first, then as a field name.
func (r *Registry) Resolve(ctx context.Context, key string, recordID int64) (core.FieldDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if d, ok := r.byKey[key]; ok {
		return d, true
	}
	if d, ok := r.byName[key]; ok {
		return d, true
	}
	return core.FieldDescriptor{}, false
}

// Groups returns the registered groups in registration order.
func (r *Registry) Groups() []Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Group(nil), r.groups...)
}

// GroupsFor returns the groups whose location matches recordType.
func (r *Registry) GroupsFor(recordType string) []Group {
	var out []Group
	for _, g := range r.Groups() {
		if g.Matches(recordType) {
			out = append(out, g)
		}
	}
	return out
}

var _ core.FieldResolver = (*Registry)(nil)
