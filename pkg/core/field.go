package core

// FieldDescriptor describes one form field as known to the field-definition
// registry. The mapper only matches on Name.
type FieldDescriptor struct {
	Key   string
	Name  string
	Label string
	Type  string
}
