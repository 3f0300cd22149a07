package core

import "context"

// RecordStore is the host content store the mapper reads from and patches.
type RecordStore interface {
	// Get retrieves a record by its ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id int64) (Record, error)

	// Update applies a partial update. Attributes left nil in the patch are untouched.
	Update(ctx context.Context, p Patch) error
}

// FieldResolver resolves a submitted field-key to its descriptor.
// An unknown key yields a zero FieldDescriptor and false.
type FieldResolver interface {
	Resolve(ctx context.Context, key string, recordID int64) (FieldDescriptor, bool)
}

// MetaStore is the generic metadata path of the host: it persists whatever
// submitted fields remain once the save hooks ran.
type MetaStore interface {
	SaveFields(ctx context.Context, recordID int64, fields *Submission) error
}

// Lister is implemented by stores able to enumerate their records.
type Lister interface {
	List(ctx context.Context) ([]Record, error)
}

// Watchable is implemented by stores that can stream record changes.
type Watchable interface {
	// Watch emits events for records whose path matches the glob pattern.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit message) to versioned stores.
const ChangeReasonKey contextKey = "change_reason"

const adminKey contextKey = "admin"

// WithAdmin marks ctx as the administrative execution context.
func WithAdmin(ctx context.Context, admin bool) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// IsAdmin reports whether ctx is the administrative execution context.
// A context never marked is treated as front-end.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(adminKey).(bool)
	return v
}

// WithChangeReason attaches a change reason to ctx.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ChangeReasonKey, reason)
}

// ChangeReason returns the change reason stored in ctx, or fallback.
func ChangeReason(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(ChangeReasonKey).(string); ok && v != "" {
		return v
	}
	return fallback
}
