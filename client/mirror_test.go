package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMirror_SaveLoadClear(t *testing.T) {
	m := NewFileMirrorAt(filepath.Join(t.TempDir(), "m.json"))

	_, ok := m.Load()
	assert.False(t, ok, "missing file is an empty mirror")

	m.Save([]Study{{ID: 1, Title: "Go"}})
	lst, ok := m.Load()
	require.True(t, ok)
	require.Len(t, lst, 1)
	assert.Equal(t, "Go", lst[0].Title)

	m.Clear()
	_, ok = m.Load()
	assert.False(t, ok)
	m.Clear() // clearing twice is harmless
}

func TestFileMirror_CorruptFileIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := NewFileMirrorAt(path).Load()
	assert.False(t, ok)
}

func TestFileMirror_EmptyListRoundTrips(t *testing.T) {
	m := NewFileMirrorAt(filepath.Join(t.TempDir(), "m.json"))
	m.Save(nil)
	lst, ok := m.Load()
	require.True(t, ok)
	assert.Empty(t, lst)
}

func TestNewFileMirror_UsesStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STUDY_PLANNER_HOME", dir)
	m, err := NewFileMirror()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "planner_estudos_cache.json"), m.Path())
}

func TestFileMirror_UnwritablePathIsSwallowed(t *testing.T) {
	m := NewFileMirrorAt(filepath.Join(t.TempDir(), "missing-dir", "m.json"))
	m.Save([]Study{{ID: 1}})
	_, ok := m.Load()
	assert.False(t, ok)
}
