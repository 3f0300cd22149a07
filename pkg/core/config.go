package core

// Default logical names and presentation settings.
const (
	DefaultTitleName    = "form_post_title"
	DefaultContentName  = "form_post_content"
	DefaultTitleLabel   = "Title"
	DefaultContentLabel = "Content"
	DefaultTitleType    = "text"
	DefaultContentType  = "wysiwyg"
	DefaultToolbar      = "basic"
	DefaultMediaUpload  = "no"
	DefaultGroupTitle   = "Post Title and Content"

	// FieldGroupRecordType is the record type the field-definition registry
	// uses for its own records. Saves of such records are never mapped.
	FieldGroupRecordType = "acf"
)

// FieldConfig configures one of the two virtual fields.
type FieldConfig struct {
	Name    string
	Enabled bool
	Label   string
	Type    string
}

// Config is the process-wide mapper configuration. It is resolved once at
// start-up and never mutated afterwards.
type Config struct {
	Title       FieldConfig
	Content     FieldConfig
	Toolbar     string
	MediaUpload string
	GroupTitle  string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Title: FieldConfig{
			Name:    DefaultTitleName,
			Enabled: true,
			Label:   DefaultTitleLabel,
			Type:    DefaultTitleType,
		},
		Content: FieldConfig{
			Name:    DefaultContentName,
			Enabled: true,
			Label:   DefaultContentLabel,
			Type:    DefaultContentType,
		},
		Toolbar:     DefaultToolbar,
		MediaUpload: DefaultMediaUpload,
		GroupTitle:  DefaultGroupTitle,
	}
}
