// Package config loads formpost settings from a YAML file and FORMPOST_*
// environment variables.
package config

import (
	"github.com/aretw0/formpost/pkg/core"
)

// Store kinds.
const (
	StoreFS       = "fs"
	StorePostgres = "postgres"
)

// Config is the root configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Mapper MapperConfig `yaml:"mapper"`
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Kind      string `yaml:"kind"      env:"FORMPOST_STORE"     env-default:"fs"`
	Path      string `yaml:"path"      env:"FORMPOST_PATH"      env-default:"."`
	DSN       string `yaml:"dsn"       env:"FORMPOST_DSN"`
	Versioned bool   `yaml:"versioned" env:"FORMPOST_VERSIONED" env-default:"false"`
	ReadOnly  bool   `yaml:"read_only" env:"FORMPOST_READ_ONLY" env-default:"false"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"FORMPOST_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"FORMPOST_LOG_FORMAT" env-default:"text"`
}

// MapperConfig holds the field names and presentation settings.
// Both fields are enabled unless disabled explicitly.
type MapperConfig struct {
	TitleName       string `yaml:"title_name"       env:"FORMPOST_TITLE_NAME"       env-default:"form_post_title"`
	ContentName     string `yaml:"content_name"     env:"FORMPOST_CONTENT_NAME"     env-default:"form_post_content"`
	TitleDisabled   bool   `yaml:"title_disabled"   env:"FORMPOST_TITLE_DISABLED"`
	ContentDisabled bool   `yaml:"content_disabled" env:"FORMPOST_CONTENT_DISABLED"`
	TitleLabel      string `yaml:"title_label"      env:"FORMPOST_TITLE_LABEL"      env-default:"Title"`
	ContentLabel    string `yaml:"content_label"    env:"FORMPOST_CONTENT_LABEL"    env-default:"Content"`
	TitleType       string `yaml:"title_type"       env:"FORMPOST_TITLE_TYPE"       env-default:"text"`
	ContentType     string `yaml:"content_type"     env:"FORMPOST_CONTENT_TYPE"     env-default:"wysiwyg"`
	Toolbar         string `yaml:"toolbar"          env:"FORMPOST_TOOLBAR"          env-default:"basic"`
	MediaUpload     string `yaml:"media_upload"     env:"FORMPOST_MEDIA_UPLOAD"     env-default:"no"`
	GroupTitle      string `yaml:"group_title"      env:"FORMPOST_GROUP_TITLE"      env-default:"Post Title and Content"`
}

// Core converts the mapper section to the immutable core configuration.
func (m MapperConfig) Core() core.Config {
	return core.Config{
		Title: core.FieldConfig{
			Name:    m.TitleName,
			Enabled: !m.TitleDisabled,
			Label:   m.TitleLabel,
			Type:    m.TitleType,
		},
		Content: core.FieldConfig{
			Name:    m.ContentName,
			Enabled: !m.ContentDisabled,
			Label:   m.ContentLabel,
			Type:    m.ContentType,
		},
		Toolbar:     m.Toolbar,
		MediaUpload: m.MediaUpload,
		GroupTitle:  m.GroupTitle,
	}
}
