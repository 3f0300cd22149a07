package platform

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/formpost/pkg/core"
)

// PluginState aggregates the observable state of the wired components.
type PluginState struct {
	Active  bool        `json:"active"`
	Config  core.Config `json:"config"`
	Hooks   any         `json:"hooks"`
	Mapper  any         `json:"mapper,omitempty"`
	Service any         `json:"service"`
	Store   any         `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (p *Plugin) State() any {
	s := PluginState{
		Active:  p.active,
		Config:  p.config,
		Hooks:   p.hooks.State(),
		Service: p.service.State(),
	}
	if p.mapper != nil {
		s.Mapper = p.mapper.State()
	}
	if st, ok := p.store.(introspection.Introspectable); ok {
		s.Store = st.State()
	}
	return s
}

// ComponentType implements introspection.Component.
func (p *Plugin) ComponentType() string {
	return "plugin"
}

var _ introspection.Introspectable = (*Plugin)(nil)
var _ introspection.Component = (*Plugin)(nil)
