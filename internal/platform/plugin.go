package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/formpost/pkg/core"
	"github.com/aretw0/formpost/pkg/fieldgroup"
	"github.com/aretw0/formpost/pkg/hooks"
	"github.com/aretw0/formpost/pkg/mapper"
)

// Registry is the field-definition registry the plugin advertises its group
// to and resolves submitted field keys against.
type Registry interface {
	core.FieldResolver
	Register(g fieldgroup.Group)
}

// Plugin is the wired title/content mapper: resolved configuration, record
// store, hook table and field group.
type Plugin struct {
	config   core.Config
	store    core.RecordStore
	meta     core.MetaStore
	registry Registry
	hooks    *hooks.Table
	mapper   *mapper.Mapper
	service  *core.Service
	group    fieldgroup.Group
	logger   *slog.Logger
	active   bool
	close    func()
}

// New resolves the configuration, opens the record store and registers the
// hooks. Without a field-definition registry the plugin is returned inert:
// no hooks, no group, no error.
func New(ctx context.Context, opts ...Option) (*Plugin, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	s, err := resolve(o)
	if err != nil {
		return nil, err
	}
	if o.logger == nil && o.logOutput != nil {
		o.logger = NewLogger(o.logOutput, s.log.Level, s.log.Format)
	}

	store, closeFn := o.store, func() {}
	if store == nil {
		store, closeFn, err = openStore(ctx, s.store, o)
		if err != nil {
			return nil, err
		}
	}

	meta := o.meta
	if meta == nil {
		meta, _ = store.(core.MetaStore)
	}

	p := &Plugin{
		config:   s.mapper,
		store:    store,
		meta:     meta,
		registry: o.registry,
		hooks:    hooks.NewTable(),
		service:  core.NewService(store, o.eventBuffer),
		logger:   o.logger,
		close:    closeFn,
	}

	if o.registry == nil {
		if o.logger != nil {
			o.logger.Warn("title/content mapping disabled", "error", core.ErrRegistryMissing)
		}
		return p, nil
	}

	p.mapper = mapper.New(s.mapper, p.service, o.registry, mapper.WithLogger(o.logger))
	p.group = fieldgroup.Build(s.mapper)

	p.hooks.OnInit(hooks.DefaultPriority, p.init)
	if err := p.hooks.Init(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("init hooks: %w", err)
	}
	p.active = true

	return p, nil
}

// init wires the save hook, the field group and the two load hooks.
func (p *Plugin) init(ctx context.Context) error {
	p.hooks.OnSave(hooks.DefaultPriority, p.mapper.ProcessTitleContent)
	p.registry.Register(p.group)
	p.hooks.OnLoadValue(p.mapper.TitleName(), hooks.DefaultPriority, p.mapper.LoadTitle)
	p.hooks.OnLoadValue(p.mapper.ContentName(), hooks.DefaultPriority, p.mapper.LoadContent)

	if p.logger != nil {
		p.logger.Debug("hooks registered",
			"title", p.mapper.TitleName(),
			"content", p.mapper.ContentName(),
			"fields", len(p.group.Fields))
	}
	return nil
}

// Logger returns the plugin logger, or nil when none was configured.
func (p *Plugin) Logger() *slog.Logger { return p.logger }

// Active reports whether the hooks are registered.
func (p *Plugin) Active() bool { return p.active }

// Config returns the resolved mapper configuration.
func (p *Plugin) Config() core.Config { return p.config }

// Hooks returns the hook table.
func (p *Plugin) Hooks() *hooks.Table { return p.hooks }

// Mapper returns the mapper, or nil when the plugin is inert.
func (p *Plugin) Mapper() *mapper.Mapper { return p.mapper }

// Service returns the record service over the configured store.
func (p *Plugin) Service() *core.Service { return p.service }

// Group returns the advertised field group. It is the zero Group when the
// plugin is inert.
func (p *Plugin) Group() fieldgroup.Group { return p.group }

// Close releases the store resources.
func (p *Plugin) Close() {
	if p.close != nil {
		p.close()
		p.close = nil
	}
}

// LoadValues returns the edit-form values of the advertised fields for the
// record referenced by ref, in group order.
func (p *Plugin) LoadValues(ctx context.Context, ref string) ([]core.Field, error) {
	out := make([]core.Field, 0, len(p.group.Fields))
	for _, f := range p.group.Fields {
		desc := f.Descriptor()
		v, err := p.hooks.LoadValue(ctx, "", ref, desc)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", desc.Name, err)
		}
		out = append(out, core.Field{Key: desc.Name, Value: v})
	}
	return out, nil
}
