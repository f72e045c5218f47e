// Package store persists the task list to a single JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/tt/internal/todo"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Store loads and saves the full ordered task list.
type Store interface {
	Load() ([]todo.Todo, error)
	Save(todos []todo.Todo) error
	Path() string
}

// document is the on-disk layout of the task file.
type document struct {
	Todos []todo.Todo `json:"todos"`
}

// FileStore implements Store on a JSON file.
type FileStore struct {
	path string
}

// New returns a FileStore for path. Nothing is read until Load.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the task file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the task file. A missing file yields an empty list.
// Read failures are *todo.PersistenceError; content that is not valid JSON
// or does not match the task file schema is *todo.FormatError.
func (s *FileStore) Load() ([]todo.Todo, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []todo.Todo{}, nil
		}
		return nil, &todo.PersistenceError{Op: "read", Path: s.path, Err: err}
	}

	doc, err := decode(data)
	if err != nil {
		return nil, &todo.FormatError{Path: s.path, Err: err}
	}
	if doc.Todos == nil {
		doc.Todos = []todo.Todo{}
	}
	return doc.Todos, nil
}

// Save rewrites the whole task file. The parent directory is created if
// needed and the file is restricted to the owner where the platform has
// permission bits.
func (s *FileStore) Save(todos []todo.Todo) error {
	if todos == nil {
		todos = []todo.Todo{}
	}
	data, err := json.MarshalIndent(document{Todos: todos}, "", "  ")
	if err != nil {
		return &todo.PersistenceError{Op: "write", Path: s.path, Err: fmt.Errorf("marshal: %w", err)}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return &todo.PersistenceError{Op: "write", Path: s.path, Err: fmt.Errorf("create directory: %w", err)}
	}
	if err := atomicWrite(s.path, data); err != nil {
		return &todo.PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(s.path, filePerm); err != nil {
			return &todo.PersistenceError{Op: "write", Path: s.path, Err: fmt.Errorf("restrict permissions: %w", err)}
		}
	}
	return nil
}

// decode parses and schema-checks a task file.
func decode(data []byte) (*document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if problems := validateDocument(raw); len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// atomicWrite writes data to a temp file next to path and renames it into
// place, so readers never see a partially written file.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
