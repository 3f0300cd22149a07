package core

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Field is one submitted field-key/value pair.
type Field struct {
	Key   string
	Value string
}

// Submission is the request-scoped, ordered mapping of field-key to submitted
// value. Iteration follows insertion order; re-setting a key keeps its position.
// The zero value is an empty submission ready to use.
type Submission struct {
	keys   []string
	values map[string]string
}

// NewSubmission builds a submission from pairs, in order.
func NewSubmission(fields ...Field) *Submission {
	s := &Submission{}
	for _, f := range fields {
		s.Set(f.Key, f.Value)
	}
	return s
}

// Set assigns value to key.
func (s *Submission) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value submitted for key.
func (s *Submission) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key. Missing keys are ignored.
func (s *Submission) Delete(key string) {
	if s == nil {
		return
	}
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
}

// Len returns the number of submitted fields.
func (s *Submission) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Empty reports whether nothing was submitted.
func (s *Submission) Empty() bool { return s.Len() == 0 }

// Keys returns the field keys in order.
func (s *Submission) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

// Fields returns a snapshot of the pairs in order. Mutating the submission
// while ranging over the snapshot is safe.
func (s *Submission) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Field{Key: k, Value: s.values[k]})
	}
	return out
}

// Clone returns an independent copy.
func (s *Submission) Clone() *Submission {
	return NewSubmission(s.Fields()...)
}

// Map returns the submission as a plain map (order is lost).
func (s *Submission) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for _, f := range s.Fields() {
		out[f.Key] = f.Value
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping keeping the document order.
// Scalar values are taken verbatim; nested values are rejected.
func (s *Submission) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("submission must be a mapping, got %s", kindName(node.Kind))
	}
	*s = Submission{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("field %q: value must be a scalar, got %s", k.Value, kindName(v.Kind))
		}
		s.Set(k.Value, v.Value)
	}
	return nil
}

// MarshalYAML encodes the submission as an ordered mapping.
func (s *Submission) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range s.Fields() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return node, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
