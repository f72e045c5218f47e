package ttdir

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tt/internal/todo"
)

func TestPaths(t *testing.T) {
	home := filepath.Join("home", "alice")

	assert.Equal(t, filepath.Join(home, ".tt"), DirPath(home))
	assert.Equal(t, filepath.Join(home, ".tt", "todos.json"), StorePath(home))
	assert.Equal(t, filepath.Join(home, ".tt", "tt.toml"), ConfigPath(home))
}

func TestDefaultStorePath(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home resolution uses HOME on unix only")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultStorePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tt", "todos.json"), path)
}

func TestDefaultStorePathWithoutHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home resolution uses HOME on unix only")
	}
	t.Setenv("HOME", "")

	_, err := DefaultStorePath()
	var cerr *todo.ConfigError
	require.ErrorAs(t, err, &cerr)
}
