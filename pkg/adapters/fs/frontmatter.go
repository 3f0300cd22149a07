package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/formpost/pkg/core"
)

// Frontmatter keys of a record file.
const (
	keyTitle  = "title"
	keyType   = "type"
	keyFields = "fields"
)

// document is a record file: YAML frontmatter plus a body.
type document struct {
	Metadata map[string]any
	Content  string
}

// parseDocument reads a Markdown stream with optional frontmatter (delimited by ---).
func parseDocument(r io.Reader) (*document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &document{Metadata: make(map[string]any)}

	if !hasDelimiter(string(data)) {
		doc.Content = string(data)
		return doc, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) == 1 {
		return nil, errors.New("frontmatter started but no closing delimiter found")
	}

	if err := yaml.Unmarshal(parts[0], &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}

	content := string(parts[1])
	if strings.HasPrefix(content, "\r\n") {
		content = content[2:]
	} else {
		content = strings.TrimPrefix(content, "\n")
	}
	doc.Content = content

	return doc, nil
}

// marshal serializes the document back to Markdown with frontmatter. The
// delimiter block is written even without metadata when the body itself
// starts with a delimiter line, so parseDocument reads the body back intact.
func (d *document) marshal() ([]byte, error) {
	var buf bytes.Buffer
	switch {
	case len(d.Metadata) > 0:
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(d.Metadata); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	case hasDelimiter(d.Content):
		buf.WriteString("---\n---\n")
	}
	buf.WriteString(d.Content)
	return buf.Bytes(), nil
}

func hasDelimiter(s string) bool {
	return strings.HasPrefix(s, "---\n") || strings.HasPrefix(s, "---\r\n")
}

// record extracts the record attributes from the document.
func (d *document) record(id int64) core.Record {
	return core.Record{
		ID:    id,
		Type:  stringOf(d.Metadata[keyType]),
		Title: stringOf(d.Metadata[keyTitle]),
		Body:  d.Content,
	}
}

// apply writes the set patch attributes into the document.
func (d *document) apply(p core.Patch) {
	if p.Title != nil {
		d.Metadata[keyTitle] = *p.Title
	}
	if p.Body != nil {
		d.Content = *p.Body
	}
}

// fields returns the generic field map, creating it if needed.
func (d *document) fields() map[string]any {
	if m, ok := d.Metadata[keyFields].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	d.Metadata[keyFields] = m
	return m
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
