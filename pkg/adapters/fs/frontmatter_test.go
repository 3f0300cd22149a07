package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formpost/pkg/core"
)

func TestParseDocument(t *testing.T) {
	t.Run("frontmatter and body", func(t *testing.T) {
		doc, err := parseDocument(strings.NewReader("---\ntitle: Hello\ntype: post\n---\nWorld\n"))
		require.NoError(t, err)

		r := doc.record(7)
		assert.Equal(t, core.Record{ID: 7, Type: "post", Title: "Hello", Body: "World\n"}, r)
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		doc, err := parseDocument(strings.NewReader("---\r\ntitle: Hello\r\n---\r\nWorld"))
		require.NoError(t, err)
		assert.Equal(t, "Hello", doc.record(1).Title)
		assert.Equal(t, "World", doc.Content)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		doc, err := parseDocument(strings.NewReader("just a body"))
		require.NoError(t, err)
		assert.Equal(t, "just a body", doc.Content)
		assert.Empty(t, doc.record(1).Title)
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		doc, err := parseDocument(strings.NewReader("---\n---\nbody"))
		require.NoError(t, err)
		assert.Equal(t, "body", doc.Content)
		assert.NotNil(t, doc.Metadata)
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		_, err := parseDocument(strings.NewReader("---\ntitle: x\nbody"))
		assert.Error(t, err)
	})

	t.Run("non-string title is rendered", func(t *testing.T) {
		doc, err := parseDocument(strings.NewReader("---\ntitle: 2024\n---\n"))
		require.NoError(t, err)
		assert.Equal(t, "2024", doc.record(1).Title)
	})
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := &document{Metadata: map[string]any{}}
	var p core.Patch
	p.SetTitle("Hello")
	p.SetBody("<p>World</p>")
	doc.apply(p)
	doc.fields()["color"] = "blue"

	data, err := doc.marshal()
	require.NoError(t, err)

	got, err := parseDocument(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.record(1).Title)
	assert.Equal(t, "<p>World</p>", got.Content)
	assert.Equal(t, map[string]any{"color": "blue"}, got.fields())
}

func TestDocumentRoundTrip_BodyWithDelimiter(t *testing.T) {
	for _, body := range []string{"---\nnot: metadata\n---\ntext\n", "---\r\nx"} {
		doc := &document{Metadata: map[string]any{}, Content: body}

		data, err := doc.marshal()
		require.NoError(t, err)

		got, err := parseDocument(strings.NewReader(string(data)))
		require.NoError(t, err)
		assert.Equal(t, body, got.Content)
		assert.Empty(t, got.Metadata)
	}
}

func TestDocumentMarshal_PlainBody(t *testing.T) {
	doc := &document{Metadata: map[string]any{}, Content: "just a body"}

	data, err := doc.marshal()
	require.NoError(t, err)
	assert.Equal(t, "just a body", string(data))
}

func TestDocumentApplyPartial(t *testing.T) {
	doc := &document{Metadata: map[string]any{keyTitle: "Old"}, Content: "Old body"}

	var p core.Patch
	p.SetBody("")
	doc.apply(p)

	assert.Equal(t, "Old", doc.Metadata[keyTitle])
	assert.Equal(t, "", doc.Content)
}
