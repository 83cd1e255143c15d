package upload

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		"standup.mp3":  "audio/mpeg",
		"STANDUP.M4A":  "audio/mp4",
		"call.webm":    "video/webm",
		"notes.bin123": "application/octet-stream",
		"noext":        "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, ContentTypeFor(name), name)
	}
}

func TestRecordingExtensions(t *testing.T) {
	exts := RecordingExtensions()
	assert.Contains(t, exts, ".mp3")
	assert.Contains(t, exts, ".mp4")
	assert.Len(t, exts, len(recordingTypes))
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weekly sync.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))

	f, err := FileFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "weekly sync.wav", f.Name)
	assert.Equal(t, int64(4), f.Size)
	assert.Equal(t, "audio/wav", f.ContentType)

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))
}

func TestFileFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FileFromPath(filepath.Join(dir, "missing.mp3"))
	assert.Error(t, err)

	_, err = FileFromPath(dir)
	assert.ErrorContains(t, err, "is a directory")
}

func TestErrorMessage(t *testing.T) {
	var nilErr error
	assert.Equal(t, "", Message(nilErr))
	assert.Equal(t, "boom", Message(&ServerError{Status: 500, Message: "boom"}))
	assert.Equal(t, GenericFailureMessage, Message(&ServerError{Status: 500}))
}
