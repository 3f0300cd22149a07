package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/formpost/internal/config"
	"github.com/aretw0/formpost/pkg/core"
)

// settings is the resolved configuration: mapper settings, store selection
// and logger settings.
type settings struct {
	mapper core.Config
	store  config.StoreConfig
	log    config.LogConfig
}

// options holds the internal configuration for a Plugin.
type options struct {
	logger       *slog.Logger
	logOutput    io.Writer
	store        core.RecordStore
	meta         core.MetaStore
	registry     Registry
	errorHandler func(error)
	eventBuffer  int

	loadConfig bool
	configPath string
	edits      []func(*settings)
}

// Option defines a functional option for configuring a Plugin.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

func (o *options) edit(fn func(*settings)) {
	o.edits = append(o.edits, fn)
}

func (o *options) mapper(fn func(*core.Config)) {
	o.edit(func(s *settings) { fn(&s.mapper) })
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogOutput makes the plugin build its own logger writing to w, using
// the resolved log level and format. WithLogger takes precedence.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// WithLogLevel overrides the configured log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.log.Level = level })
	}
}

// WithLogFormat overrides the configured log format (text or json).
func WithLogFormat(format string) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.log.Format = format })
	}
}

// WithRegistry supplies the field-definition registry. Without one the
// plugin is inert.
func WithRegistry(r Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithStore injects a record store. The configured store kind is ignored.
func WithStore(store core.RecordStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithMetaStore sets where residual submissions are persisted. By default
// the record store is used if it implements core.MetaStore.
func WithMetaStore(meta core.MetaStore) Option {
	return func(o *options) {
		o.meta = meta
	}
}

// WithConfigFile loads settings from a YAML file (and FORMPOST_* variables)
// before the other options apply.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.loadConfig = true
		o.configPath = path
	}
}

// WithEnvironment loads settings from FORMPOST_* variables (and the file
// named by FORMPOST_CONFIG, if any) before the other options apply.
func WithEnvironment() Option {
	return func(o *options) {
		o.loadConfig = true
	}
}

// WithConfig replaces the mapper settings wholesale.
func WithConfig(cfg core.Config) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { *c = cfg })
	}
}

// WithSettings registers a function that may rewrite any mapper setting.
// Functions run in registration order after configuration files.
func WithSettings(fn func(*core.Config)) Option {
	return func(o *options) {
		o.mapper(fn)
	}
}

// WithTitleName sets the logical name mapped onto the record title.
func WithTitleName(name string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Title.Name = name })
	}
}

// WithContentName sets the logical name mapped onto the record body.
func WithContentName(name string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Content.Name = name })
	}
}

// WithTitleField controls whether the title field is advertised in the group.
func WithTitleField(enabled bool) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Title.Enabled = enabled })
	}
}

// WithContentField controls whether the content field is advertised in the group.
func WithContentField(enabled bool) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Content.Enabled = enabled })
	}
}

// WithTitleLabel sets the label of the title field.
func WithTitleLabel(label string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Title.Label = label })
	}
}

// WithContentLabel sets the label of the content field.
func WithContentLabel(label string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Content.Label = label })
	}
}

// WithTitleType sets the field type tag of the title field.
func WithTitleType(t string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Title.Type = t })
	}
}

// WithContentType sets the field type tag of the content field.
func WithContentType(t string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Content.Type = t })
	}
}

// WithToolbar sets the rich-text toolbar tier of the content field.
func WithToolbar(toolbar string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.Toolbar = toolbar })
	}
}

// WithMediaUpload sets the media upload permission of the content field ("yes"/"no").
func WithMediaUpload(v string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.MediaUpload = v })
	}
}

// WithGroupTitle sets the title of the advertised field group.
func WithGroupTitle(title string) Option {
	return func(o *options) {
		o.mapper(func(c *core.Config) { c.GroupTitle = title })
	}
}

// WithStoreKind selects the record store ("fs" or "postgres").
func WithStoreKind(kind string) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.store.Kind = kind })
	}
}

// WithPath sets the record directory of the fs store.
func WithPath(path string) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.store.Path = path })
	}
}

// WithDSN sets the connection string of the postgres store and selects it.
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.edit(func(s *settings) {
			s.store.DSN = dsn
			s.store.Kind = config.StorePostgres
		})
	}
}

// WithVersioning enables or disables git revisions in the fs store.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.store.Versioned = enabled })
	}
}

// WithReadOnly makes the fs store reject writes.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.edit(func(s *settings) { s.store.ReadOnly = enabled })
	}
}

// WithWatcherErrorHandler registers a callback for errors of the fs watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithEventBuffer sets the size of the event buffer used by Watch.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
