package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelDebug, true)

	log.With(F("request_id", "abc")).Info("uploaded",
		F("size", int64(42)),
		F("duration", 2*time.Second),
		Err(errors.New("boom")),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "uploaded", entry["message"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "meetmind", entry["app"])
	assert.Equal(t, float64(42), entry["size"])
	assert.Equal(t, "boom", entry["error"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, true)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "meetmind.log")

	log, closer, err := Open(Config{Level: LevelInfo, File: path})
	require.NoError(t, err)
	log.Info("hello", F("phase", "idle"))
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "phase=idle")
}

func TestOpen_NoDestinationDiscards(t *testing.T) {
	log, closer, err := Open(Config{})
	require.NoError(t, err)
	assert.IsType(t, &nopLogger{}, log)
	assert.NoError(t, closer())
}

func TestLevel_IsValid(t *testing.T) {
	assert.True(t, LevelDebug.IsValid())
	assert.True(t, LevelError.IsValid())
	assert.False(t, Level("verbose").IsValid())
}
