package platform

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		NewLogger(&buf, "info", "json").Info("hello", "record", 42)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, float64(42), line["record"])
	})

	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&buf, "warn", "text")
		l.Info("hidden")
		l.Warn("shown")

		out := buf.String()
		assert.False(t, strings.Contains(out, "hidden"))
		assert.Contains(t, out, "msg=shown")
	})
}
