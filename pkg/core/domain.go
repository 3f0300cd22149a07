// Package core holds the domain of the title/content mapping: records, patches,
// submitted fields and the ports the mapper talks to.
package core

import "fmt"

// Record is a content entry owned by the host store.
// Only the attributes the mapper reads or writes are modelled.
type Record struct {
	ID    int64
	Type  string
	Title string
	Body  string
}

// Patch is a partial update of a Record.
// A nil attribute is left untouched by the store.
type Patch struct {
	ID    int64
	Title *string
	Body  *string
}

// SetTitle assigns the title attribute of the patch.
func (p *Patch) SetTitle(v string) { p.Title = &v }

// SetBody assigns the body attribute of the patch.
func (p *Patch) SetBody(v string) { p.Body = &v }

// Empty reports whether the patch carries no attribute besides the ID.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Body == nil
}

// Apply returns r with the patch attributes written over it.
func (p Patch) Apply(r Record) Record {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Body != nil {
		r.Body = *p.Body
	}
	return r
}

// String renders the patch for logs, e.g. "{ID: 42, post_title: "Hello"}".
func (p Patch) String() string {
	s := fmt.Sprintf("{ID: %d", p.ID)
	if p.Title != nil {
		s += fmt.Sprintf(", post_title: %q", *p.Title)
	}
	if p.Body != nil {
		s += fmt.Sprintf(", post_content: %q", *p.Body)
	}
	return s + "}"
}

// EventType represents the type of change in the record store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a record in the store.
type Event struct {
	Type      EventType
	ID        int64
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s record %d", e.Type, e.ID)
}
