package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := capture(t, false)
	Debug("hidden")
	Section("Hidden")
	assert.Zero(t, buf.Len())

	SetVerbose(true)
	Debug("parsed filename", zap.String("function", "ZI73_01"))

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "debug", got[0]["level"])
	assert.Equal(t, "parsed filename", got[0]["msg"])
	assert.Equal(t, "ZI73_01", got[0]["function"])
}

func TestInfoWarnError(t *testing.T) {
	buf := capture(t, false)

	Info("processed", zap.Int("rows", 3))
	Warn("slow")
	Error("failed", zap.Error(errors.New("boom")))

	got := entries(t, buf)
	require.Len(t, got, 3)
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, float64(3), got[0]["rows"])
	assert.Equal(t, "warn", got[1]["level"])
	assert.Equal(t, "error", got[2]["level"])
	assert.Equal(t, "boom", got[2]["error"])
	assert.Contains(t, got[0], "ts")
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Sweep")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Sweep", got[0]["section"])
}

func TestWith(t *testing.T) {
	buf := capture(t, false)

	With(zap.String("invocation_id", "abc")).Info("request")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0]["invocation_id"])
}
