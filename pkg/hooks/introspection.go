package hooks

import "github.com/aretw0/introspection"

// TableState lists handler counts per key.
type TableState struct {
	Handlers map[string]int `json:"handlers"`
}

// State implements introspection.Introspectable.
func (t *Table) State() any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := TableState{Handlers: make(map[string]int, len(t.entries))}
	for k, list := range t.entries {
		s.Handlers[k.String()] = len(list)
	}
	return s
}

// ComponentType implements introspection.Component.
func (t *Table) ComponentType() string {
	return "hooks"
}

var _ introspection.Introspectable = (*Table)(nil)
var _ introspection.Component = (*Table)(nil)
