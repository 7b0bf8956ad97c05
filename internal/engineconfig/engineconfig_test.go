package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.json")
	want := Default()
	want.ShowContacts = true
	want.Fullscreen = true
	want.TargetFPS = 144
	require.NoError(t, SaveTo(path, want))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialAndInvalid(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"grid_visible": false, "target_fps": -5}`), 0644))
	p, err := LoadFrom(partial)
	require.NoError(t, err)
	assert.False(t, p.GridVisible)
	assert.Equal(t, 60, p.TargetFPS)
	assert.True(t, p.ShowFPS, "missing keys keep their defaults")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{not json`), 0644))
	p, err = LoadFrom(broken)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}
