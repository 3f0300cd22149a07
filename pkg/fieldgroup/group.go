// Package fieldgroup builds the field-group descriptor advertising the title
// and content virtual fields, and provides an in-memory field-definition
// registry that resolves submitted field keys.
package fieldgroup

import (
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/formpost/pkg/core"
)

// Fixed identifiers of the built-in group and its fields.
const (
	GroupKey        = "acf_post-title-content"
	TitleFieldKey   = "field_5232d86ba9246title"
	ContentFieldKey = "field_5232d8daa9247content"

	ParamRecordType = "post_type"
)

// Rule is one location condition.
type Rule struct {
	Param    string `yaml:"param"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
	OrderNo  int    `yaml:"order_no"`
	GroupNo  int    `yaml:"group_no"`
}

// Options are the presentation options of a group.
type Options struct {
	Position     string   `yaml:"position"`
	Layout       string   `yaml:"layout"`
	HideOnScreen []string `yaml:"hide_on_screen"`
}

// Field is a field definition inside a group.
type Field struct {
	ID           string `yaml:"id"`
	Key          string `yaml:"key"`
	Label        string `yaml:"label"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	DefaultValue string `yaml:"default_value"`
	Required     bool   `yaml:"required,omitempty"`
	Placeholder  string `yaml:"placeholder,omitempty"`
	Prepend      string `yaml:"prepend,omitempty"`
	Append       string `yaml:"append,omitempty"`
	Formatting   string `yaml:"formatting,omitempty"`
	Maxlength    string `yaml:"maxlength,omitempty"`
	Toolbar      string `yaml:"toolbar,omitempty"`
	MediaUpload  string `yaml:"media_upload,omitempty"`
}

// Descriptor returns the resolver view of the field.
func (f Field) Descriptor() core.FieldDescriptor {
	return core.FieldDescriptor{Key: f.Key, Name: f.Name, Label: f.Label, Type: f.Type}
}

// Group is a field-group descriptor bundle.
type Group struct {
	ID        string   `yaml:"id"`
	Key       string   `yaml:"key"`
	Title     string   `yaml:"title"`
	Fields    []Field  `yaml:"fields"`
	Location  [][]Rule `yaml:"location"`
	Options   Options  `yaml:"options"`
	MenuOrder int      `yaml:"menu_order"`
}

// Build returns the title/content group for cfg. Disabled fields are left
// out, so the group carries zero, one or two fields.
func Build(cfg core.Config) Group {
	g := Group{
		ID:     GroupKey,
		Key:    GroupKey,
		Title:  cfg.GroupTitle,
		Fields: []Field{},
		Location: [][]Rule{{
			{Param: ParamRecordType, Operator: "==", Value: "", OrderNo: 0, GroupNo: 0},
		}},
		Options: Options{
			Position:     "normal",
			Layout:       "no_box",
			HideOnScreen: []string{},
		},
		MenuOrder: -10,
	}

	if cfg.Title.Enabled {
		g.Fields = append(g.Fields, Field{
			ID:         TitleFieldKey,
			Key:        TitleFieldKey,
			Label:      cfg.Title.Label,
			Name:       cfg.Title.Name,
			Type:       cfg.Title.Type,
			Required:   true,
			Formatting: "html",
		})
	}

	if cfg.Content.Enabled {
		g.Fields = append(g.Fields, Field{
			ID:          ContentFieldKey,
			Key:         ContentFieldKey,
			Label:       cfg.Content.Label,
			Name:        cfg.Content.Name,
			Type:        cfg.Content.Type,
			Toolbar:     cfg.Toolbar,
			MediaUpload: cfg.MediaUpload,
		})
	}

	return g
}

// Matches reports whether the group applies to records of recordType.
// Location is an OR of rule groups, each an AND of rules. Rule values are
// glob patterns; a literal value only matches itself.
func (g Group) Matches(recordType string) bool {
	for _, and := range g.Location {
		if len(and) == 0 {
			continue
		}
		ok := true
		for _, r := range and {
			if !r.matches(recordType) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func (r Rule) matches(recordType string) bool {
	if r.Param != ParamRecordType {
		return false
	}
	hit, err := doublestar.Match(r.Value, recordType)
	if err != nil {
		return false
	}
	switch r.Operator {
	case "==":
		return hit
	case "!=":
		return !hit
	}
	return false
}

// Marshal renders groups as YAML.
func Marshal(groups ...Group) ([]byte, error) {
	return yaml.Marshal(groups)
}
