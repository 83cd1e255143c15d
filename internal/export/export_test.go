package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pablasso/meetmind/internal/render"
	"github.com/pablasso/meetmind/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	data, err := render.Export(testutil.SampleResult(t))
	require.NoError(t, err)

	path, err := Write(dir, data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "meeting_analysis.json"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)

	var got, want any
	require.NoError(t, json.Unmarshal(written, &got))
	require.NoError(t, json.Unmarshal([]byte(testutil.SampleDocument), &want))
	assert.Equal(t, want, got)
}

func TestWrite_ReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Write(dir, []byte(`{"a": 1}`))
	require.NoError(t, err)
	path, err := Write(dir, []byte(`{"a": 2}`))
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 2}`, string(written))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_DefaultsToWorkingDirectory(t *testing.T) {
	dir := testutil.SetupTestDir(t)

	path, err := Write("", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "meeting_analysis.json", path)

	_, err = os.Stat(filepath.Join(dir, "meeting_analysis.json"))
	assert.NoError(t, err)
}
