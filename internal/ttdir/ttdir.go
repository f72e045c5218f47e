// Package ttdir provides constants and path helpers for the per-user .tt directory.
package ttdir

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nibzard/tt/internal/todo"
)

const (
	// Dir is the name of the tt state directory inside the home directory.
	Dir = ".tt"

	// DefaultStoreFile is the task file name (inside .tt).
	DefaultStoreFile = "todos.json"

	// DefaultConfigFile is the config file name (inside .tt).
	DefaultConfigFile = "tt.toml"
)

// StorePath returns the task file path for a home directory.
func StorePath(home string) string {
	return filepath.Join(DirPath(home), DefaultStoreFile)
}

// ConfigPath returns the config file path for a home directory.
func ConfigPath(home string) string {
	return filepath.Join(DirPath(home), DefaultConfigFile)
}

// DirPath returns the .tt directory for a home directory.
func DirPath(home string) string {
	return filepath.Join(home, Dir)
}

// Home returns the invoking user's home directory, or a *todo.ConfigError
// if it cannot be determined.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &todo.ConfigError{Err: err}
	}
	if home == "" {
		return "", &todo.ConfigError{Err: errors.New("home directory is empty")}
	}
	return home, nil
}

// DefaultStorePath returns ~/.tt/todos.json for the invoking user.
func DefaultStorePath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return StorePath(home), nil
}
