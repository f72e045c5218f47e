package store

import "github.com/nibzard/tt/internal/todo"

// Memory is an in-process Store. Nothing touches the disk.
type Memory struct {
	todos []todo.Todo

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

// NewMemory returns a Memory store seeded with todos.
func NewMemory(todos ...todo.Todo) *Memory {
	return &Memory{todos: clone(todos)}
}

// Path returns a placeholder path.
func (m *Memory) Path() string {
	return ":memory:"
}

// Load returns a copy of the stored list.
func (m *Memory) Load() ([]todo.Todo, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return clone(m.todos), nil
}

// Save replaces the stored list with a copy of todos.
func (m *Memory) Save(todos []todo.Todo) error {
	if m.SaveErr != nil {
		return &todo.PersistenceError{Op: "write", Path: m.Path(), Err: m.SaveErr}
	}
	m.todos = clone(todos)
	m.Saves++
	return nil
}

// Todos returns a copy of what was last saved.
func (m *Memory) Todos() []todo.Todo {
	return clone(m.todos)
}

func clone(todos []todo.Todo) []todo.Todo {
	out := make([]todo.Todo, len(todos))
	copy(out, todos)
	return out
}
