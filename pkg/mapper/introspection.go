package mapper

import "github.com/aretw0/introspection"

// Stats counts save invocations.
type Stats struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}

// State is the observable state of a Mapper.
type State struct {
	TitleName   string `json:"title_name"`
	ContentName string `json:"content_name"`
	Stats       Stats  `json:"stats"`
}

// State implements introspection.Introspectable.
func (m *Mapper) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		TitleName:   m.titleName,
		ContentName: m.contentName,
		Stats:       m.stats,
	}
}

// ComponentType implements introspection.Component.
func (m *Mapper) ComponentType() string {
	return "mapper"
}

var _ introspection.Introspectable = (*Mapper)(nil)
var _ introspection.Component = (*Mapper)(nil)
