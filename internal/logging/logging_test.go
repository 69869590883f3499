package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"":        slog.LevelDebug,
		"verbose": slog.LevelDebug,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelFromString(in), in)
	}
}

func TestNewWithFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithFormat(&buf, "info", "json")
	log.Debug("hidden")
	log.With("component", "pipeline").Info("scan run finished", "published", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "pipeline", entry["component"])
	assert.Equal(t, float64(3), entry["published"])

	buf.Reset()
	NewWithFormat(&buf, "debug", "text").Debug("visible", "k", "v")
	assert.Contains(t, buf.String(), "msg=visible k=v")
}
