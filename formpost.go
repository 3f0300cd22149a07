package formpost

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/formpost/internal/platform"
	"github.com/aretw0/formpost/pkg/core"
	"github.com/aretw0/formpost/pkg/fieldgroup"
)

// --- Types ---

// Plugin is the wired title/content mapper.
type Plugin = platform.Plugin

// SubmitResult is the outcome of Plugin.Submit.
type SubmitResult = platform.SubmitResult

// Registry is the field-definition registry a Plugin advertises to.
type Registry = platform.Registry

// Config is the resolved mapper configuration.
type Config = core.Config

// Submission is an ordered set of submitted form fields.
type Submission = core.Submission

// Field is one submitted form field.
type Field = core.Field

// Record is a content entry with a title and a body.
type Record = core.Record

// --- Configuration ---

// Option defines a functional option for configuring a Plugin.
type Option = platform.Option

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option { return platform.WithLogger(logger) }

// WithLogOutput makes the plugin build its own logger writing to w from the
// resolved log settings.
func WithLogOutput(w io.Writer) Option { return platform.WithLogOutput(w) }

// WithLogLevel overrides the configured log level.
func WithLogLevel(level string) Option { return platform.WithLogLevel(level) }

// WithLogFormat overrides the configured log format (text or json).
func WithLogFormat(format string) Option { return platform.WithLogFormat(format) }

// WithRegistry supplies the field-definition registry. Without one the plugin is inert.
func WithRegistry(r Registry) Option { return platform.WithRegistry(r) }

// WithStore injects a record store.
func WithStore(store core.RecordStore) Option { return platform.WithStore(store) }

// WithMetaStore sets where residual submissions are persisted.
func WithMetaStore(meta core.MetaStore) Option { return platform.WithMetaStore(meta) }

// WithConfigFile loads settings from a YAML file and FORMPOST_* variables.
func WithConfigFile(path string) Option { return platform.WithConfigFile(path) }

// WithEnvironment loads settings from FORMPOST_* variables.
func WithEnvironment() Option { return platform.WithEnvironment() }

// WithConfig replaces the mapper settings.
func WithConfig(cfg Config) Option { return platform.WithConfig(cfg) }

// WithSettings registers a function that may rewrite any mapper setting.
func WithSettings(fn func(*Config)) Option { return platform.WithSettings(fn) }

// WithTitleName sets the logical name mapped onto the record title.
func WithTitleName(name string) Option { return platform.WithTitleName(name) }

// WithContentName sets the logical name mapped onto the record body.
func WithContentName(name string) Option { return platform.WithContentName(name) }

// WithTitleField controls whether the title field is advertised.
func WithTitleField(enabled bool) Option { return platform.WithTitleField(enabled) }

// WithContentField controls whether the content field is advertised.
func WithContentField(enabled bool) Option { return platform.WithContentField(enabled) }

// WithTitleLabel sets the label of the title field.
func WithTitleLabel(label string) Option { return platform.WithTitleLabel(label) }

// WithContentLabel sets the label of the content field.
func WithContentLabel(label string) Option { return platform.WithContentLabel(label) }

// WithTitleType sets the field type tag of the title field.
func WithTitleType(t string) Option { return platform.WithTitleType(t) }

// WithContentType sets the field type tag of the content field.
func WithContentType(t string) Option { return platform.WithContentType(t) }

// WithToolbar sets the rich-text toolbar tier of the content field.
func WithToolbar(toolbar string) Option { return platform.WithToolbar(toolbar) }

// WithMediaUpload sets the media upload permission of the content field.
func WithMediaUpload(v string) Option { return platform.WithMediaUpload(v) }

// WithGroupTitle sets the title of the advertised field group.
func WithGroupTitle(title string) Option { return platform.WithGroupTitle(title) }

// WithStoreKind selects the record store ("fs" or "postgres").
func WithStoreKind(kind string) Option { return platform.WithStoreKind(kind) }

// WithPath sets the record directory of the fs store.
func WithPath(path string) Option { return platform.WithPath(path) }

// WithDSN selects the postgres store.
func WithDSN(dsn string) Option { return platform.WithDSN(dsn) }

// WithVersioning enables or disables git revisions in the fs store.
func WithVersioning(enabled bool) Option { return platform.WithVersioning(enabled) }

// WithReadOnly makes the fs store reject writes.
func WithReadOnly(enabled bool) Option { return platform.WithReadOnly(enabled) }

// WithWatcherErrorHandler registers a callback for errors of the fs watch loop.
func WithWatcherErrorHandler(fn func(error)) Option { return platform.WithWatcherErrorHandler(fn) }

// WithEventBuffer sets the size of the event buffer used by Watch.
func WithEventBuffer(size int) Option { return platform.WithEventBuffer(size) }

// --- Factory ---

// New creates a Plugin.
func New(ctx context.Context, opts ...Option) (*Plugin, error) {
	return platform.New(ctx, opts...)
}

// NewRegistry creates an empty in-memory field-definition registry.
func NewRegistry() *fieldgroup.Registry {
	return fieldgroup.NewRegistry()
}

// NewSubmission creates a submission from fields, in order.
func NewSubmission(fields ...Field) *Submission {
	return core.NewSubmission(fields...)
}

// FindConfig looks upwards from startDir for a formpost.yaml file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}
