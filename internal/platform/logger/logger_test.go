package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Info,
		"warning": Warn,
		" error ": Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestJSONLogger_WritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{
		Level:  Info,
		Format: FormatJSON,
		App:    "cat-registry",
		Output: zapcore.AddSync(&buf),
	})

	l.Debug("hidden", nil)
	l.With(map[string]any{"cat_id": 7}).Warn("dangling parent", map[string]any{
		"role": "dam",
		"err":  errors.New("boom"),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "dangling parent", entry["msg"])
	assert.Equal(t, "cat-registry", entry["app"])
	assert.Equal(t, float64(7), entry["cat_id"])
	assert.Equal(t, "dam", entry["role"])
	assert.Equal(t, "boom", entry["err"])
}
