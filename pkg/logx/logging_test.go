package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, b []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestLoggerFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "info").With(String("run_id", "r1"))

	log.Debug("hidden")
	log.Info("task succeeded", String("task", "backup"), Int("exit_code", 0), Uint64("now", 42), Duration("took", 0))
	log.Warn("task failed", Err(nil))

	lines := decodeLines(t, buf.Bytes())
	require.Len(t, lines, 2)
	assert.Equal(t, "task succeeded", lines[0]["message"])
	assert.Equal(t, "r1", lines[0]["run_id"])
	assert.Equal(t, "backup", lines[0]["task"])
	assert.Equal(t, float64(42), lines[0]["now"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Contains(t, lines[0]["caller"], "logging_test.go:")

	assert.Equal(t, "warn", lines[1]["level"])
	_, hasErr := lines[1]["err"]
	assert.False(t, hasErr)
}

func TestLoggerErrField(t *testing.T) {
	var buf bytes.Buffer
	NewJSON(&buf, "warn").Error("state save failed", Err(errors.New("disk full")))

	lines := decodeLines(t, buf.Bytes())
	require.Len(t, lines, 1)
	assert.Equal(t, "disk full", lines[0]["err"])
}

func TestZeroAndNopLoggers(t *testing.T) {
	var zero Logger
	assert.True(t, zero.IsZero())
	zero.Error("dropped")

	nop := Nop()
	assert.False(t, nop.IsZero())
	nop.Error("dropped")
}

func TestServiceFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recur.log")
	svc, log := New(Config{Level: "debug", File: FileConfig{Enabled: true, Path: path}})

	log.Debug("state loaded", Int("entries", 3))
	require.NoError(t, svc.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := decodeLines(t, b)
	require.Len(t, lines, 1)
	assert.Equal(t, "state loaded", lines[0]["message"])
	assert.Equal(t, float64(3), lines[0]["entries"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(" debug ", zerolog.InfoLevel))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARNING", zerolog.InfoLevel))
	assert.Equal(t, zerolog.TraceLevel, parseLevel("trace", zerolog.InfoLevel))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud", zerolog.InfoLevel))
}
