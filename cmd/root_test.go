package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tt/internal/store"
	"github.com/nibzard/tt/internal/todo"
)

// isolate gives the test its own home directory and clears TT_* so the
// default task file lands in a temp dir. It returns the default store path.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{"TT_CONFIG", "TT_STORE", "TT_COLOR", "TT_LOG_LEVEL", "TT_LOG_FORMAT", "TT_LOG_TIMESTAMPS", "TT_LOG_CALLER", "CLICOLOR_FORCE"} {
		t.Setenv(key, "")
	}
	return filepath.Join(home, ".tt", "todos.json")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := RunWithIO(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, args...)
	require.NoError(t, err, "tt %v\nstderr: %s", args, errOut)
	return out
}

func loadStore(t *testing.T, path string) []todo.Todo {
	t.Helper()
	todos, err := store.New(path).Load()
	require.NoError(t, err)
	return todos
}

func TestHelpAndVersion(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{{"-h"}, {"--help"}, {"help"}} {
		out := mustRun(t, args...)
		assert.Contains(t, out, "Usage:")
		assert.Contains(t, out, "add <title>")
	}
	for _, args := range [][]string{{"-v"}, {"--version"}, {"version"}} {
		assert.Equal(t, "tt version dev\n", mustRun(t, args...))
	}
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)
	_, errOut, err := run(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
	assert.Contains(t, errOut, "Usage:")
}

func TestSubcommandHelpIsNotAnError(t *testing.T) {
	isolate(t)
	_, errOut, err := run(t, "add", "-h")
	require.NoError(t, err)
	assert.Contains(t, errOut, "-p")
}

func TestDefaultCommandListsEmpty(t *testing.T) {
	path := isolate(t)

	out := mustRun(t)
	assert.Contains(t, out, "No todos found")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "listing must not create the task file")
}

func TestAddAndList(t *testing.T) {
	path := isolate(t)

	out := mustRun(t, "add", "Buy", "milk", "-p", "2")
	assert.Equal(t, "✅ Added todo: Buy milk (P2 high)\n", out)

	out = mustRun(t, "add", "-priority=1", "File taxes")
	assert.Contains(t, out, "File taxes (P1 urgent)")

	mustRun(t, "add", "Read book")

	out = mustRun(t, "ls")
	assert.Equal(t, "📝 Your todos:\n"+
		"  0 [⏳] P2 Buy milk\n"+
		"  1 [⏳] P1 File taxes\n"+
		"  2 [⏳] P4 Read book\n", out)

	todos := loadStore(t, path)
	require.Len(t, todos, 3)
	assert.Equal(t, todo.PriorityLow, todos[2].Priority)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	path := isolate(t)

	for _, p := range []string{"0", "5", "-1"} {
		_, _, err := run(t, "add", "Nope", "-p", p)
		var verr *todo.ValidationError
		require.ErrorAs(t, err, &verr, "priority %s", p)
	}

	_, _, err := run(t, "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: tt add")

	_, _, err = run(t, "add", "x", "-p", "high")
	require.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected adds must not write the file")
}

func TestCompleteIncompleteToggle(t *testing.T) {
	path := isolate(t)
	mustRun(t, "add", "Task")

	assert.Equal(t, "✅ Marked as completed: Task\n", mustRun(t, "complete", "0"))
	assert.True(t, loadStore(t, path)[0].Completed)

	assert.Equal(t, "✅ Marked as completed: Task\n", mustRun(t, "done", "0"))

	assert.Equal(t, "⏳ Marked as incomplete: Task\n", mustRun(t, "incomplete", "0"))
	assert.False(t, loadStore(t, path)[0].Completed)
	mustRun(t, "undo", "0")

	assert.Equal(t, "🔄 Toggled: Task is now ✅ completed\n", mustRun(t, "toggle", "0"))
	assert.Equal(t, "🔄 Toggled: Task is now ⏳ incomplete\n", mustRun(t, "toggle", "0"))
}

func TestDeleteShiftsIndices(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "A", "-p", "1")
	mustRun(t, "add", "B", "-p", "1")

	assert.Equal(t, "🗑️  Deleted: A\n", mustRun(t, "delete", "0"))
	assert.Contains(t, mustRun(t, "list"), "0 [⏳] P1 B")

	mustRun(t, "rm", "0")
	assert.Contains(t, mustRun(t, "list"), "No todos found")

	_, _, err := run(t, "rm", "0")
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

func TestIndexErrors(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "only")

	for _, cmd := range []string{"complete", "incomplete", "toggle", "delete"} {
		_, _, err := run(t, cmd, "1")
		var nf *todo.NotFoundError
		require.ErrorAs(t, err, &nf, cmd)
		assert.Equal(t, 1, nf.Index)
		assert.Equal(t, 1, nf.Len)

		_, _, err = run(t, cmd, "-1")
		require.ErrorAs(t, err, &nf, "%s with a negative index", cmd)

		_, _, err = run(t, cmd, "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid index "abc"`)

		_, _, err = run(t, cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage: tt "+cmd)
	}
}

func TestEdit(t *testing.T) {
	path := isolate(t)
	mustRun(t, "add", "Old title", "-p", "3")
	created := loadStore(t, path)[0].CreatedAt

	out := mustRun(t, "edit", "0", "-t", "New title")
	assert.Equal(t, "✏️  Updated 0: New title (P3 medium)\n", out)

	mustRun(t, "edit", "-p", "1", "0")
	got := loadStore(t, path)[0]
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, todo.PriorityUrgent, got.Priority)
	assert.True(t, created.Equal(got.CreatedAt), "edit keeps created_at")

	_, _, err := run(t, "edit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, _, err = run(t, "edit", "0", "-t", "  ")
	require.Error(t, err)

	_, _, err = run(t, "edit", "3", "-t", "x")
	assert.ErrorIs(t, err, todo.ErrNotFound)
}

// Older releases renamed the task even when the new priority was rejected.
func TestEditInvalidPriorityKeepsTitle(t *testing.T) {
	path := isolate(t)
	mustRun(t, "add", "Keep me", "-p", "2")

	_, _, err := run(t, "edit", "0", "-t", "Renamed", "-p", "9")
	var verr *todo.ValidationError
	require.ErrorAs(t, err, &verr)

	got := loadStore(t, path)[0]
	assert.Equal(t, "Keep me", got.Title)
	assert.Equal(t, todo.PriorityHigh, got.Priority)
}

func TestStoreLocationOverrides(t *testing.T) {
	defaultPath := isolate(t)

	flagPath := filepath.Join(t.TempDir(), "flag.json")
	mustRun(t, "-store", flagPath, "add", "via flag")
	assert.Len(t, loadStore(t, flagPath), 1)

	envPath := filepath.Join(t.TempDir(), "env.json")
	t.Setenv("TT_STORE", envPath)
	mustRun(t, "add", "via env")
	assert.Len(t, loadStore(t, envPath), 1)

	_, err := os.Stat(defaultPath)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigFileStore(t *testing.T) {
	home := t.TempDir()
	isolate(t)
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, ".tt", "tt.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("store_file = \"~/lists/work.json\"\n"), 0o644))

	mustRun(t, "add", "from config")
	assert.Len(t, loadStore(t, filepath.Join(home, "lists", "work.json")), 1)

	out := mustRun(t, "config")
	assert.Contains(t, out, "# config file: "+cfgPath)
	assert.Contains(t, out, "user file")
}

func TestInvalidConfigIsError(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "-color", "rainbow", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.Contains(t, err.Error(), "color")
}

func TestCorruptFileIsNonFatal(t *testing.T) {
	path := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	out, errOut, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos found")
	assert.Contains(t, errOut, "could not load todos")

	_, errOut, err = run(t, "-log-level", "error", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "⚠️  could not load todos from "+path)
}

func TestMissingHomeIsConfigError(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home resolution uses HOME on unix only")
	}
	isolate(t)
	t.Setenv("HOME", "")

	_, _, err := run(t, "list")
	var cerr *todo.ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestDoctor(t *testing.T) {
	t.Run("fresh install", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "doctor")
		assert.Contains(t, out, "Not created yet")
		assert.Contains(t, out, "All checks passed.")
	})

	t.Run("valid file", func(t *testing.T) {
		isolate(t)
		mustRun(t, "add", "one")
		mustRun(t, "add", "two")
		out := mustRun(t, "doctor")
		assert.Contains(t, out, "Valid: 2 todo(s)")
		if runtime.GOOS != "windows" {
			assert.Contains(t, out, "Permissions: 0600")
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := isolate(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(`{"todos":[{"title":"a","completed":false,"created_at":"2024-01-01T00:00:00Z","priority":9}]}`), 0o600))

		out, _, err := run(t, "doctor")
		assert.ErrorIs(t, err, errDoctorFailed)
		assert.Contains(t, out, "Invalid:")
		assert.Contains(t, out, "todos[0].priority")
	})

	t.Run("explicit path", func(t *testing.T) {
		isolate(t)
		other := filepath.Join(t.TempDir(), "other.json")
		require.NoError(t, store.New(other).Save(nil))
		out := mustRun(t, "doctor", other)
		assert.Contains(t, out, "Task file: "+other)
		assert.Contains(t, out, "Valid: 0 todo(s)")
	})
}

func TestConfigCommand(t *testing.T) {
	isolate(t)
	t.Setenv("TT_LOG_LEVEL", "debug")

	out := mustRun(t, "config")
	assert.Contains(t, out, "log_level")
	assert.Contains(t, out, "environment")
	assert.Contains(t, out, "(default ~/.tt/todos.json)")

	out = mustRun(t, "config", "-example")
	assert.Contains(t, out, "log_level = \"warn\"")
}

func TestTUIRequiresTTY(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "tui")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTY")
}

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPos  []string
		wantP    int
		wantFlag bool
	}{
		{"flags first", []string{"-p", "2", "Buy", "milk"}, []string{"Buy", "milk"}, 2, false},
		{"flags last", []string{"Buy", "milk", "-p", "3"}, []string{"Buy", "milk"}, 3, false},
		{"equals form", []string{"--p=1", "x"}, []string{"x"}, 1, false},
		{"negative positional", []string{"-1"}, []string{"-1"}, 4, false},
		{"negative flag value", []string{"x", "-p", "-1"}, []string{"x"}, -1, false},
		{"bool flag does not eat", []string{"-q", "x"}, []string{"x"}, 4, true},
		{"double dash", []string{"-p", "2", "--", "-t", "title"}, []string{"-t", "title"}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			p := fs.Int("p", 4, "")
			q := fs.Bool("q", false, "")

			pos, err := parseInterspersed(fs, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantP, *p)
			assert.Equal(t, tt.wantFlag, *q)
		})
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := parseInterspersed(fs, []string{"-nope"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, flag.ErrHelp))
	assert.True(t, strings.Contains(err.Error(), "nope"))
}
