// Package manager owns the in-memory task list and keeps the task file in
// sync with it.
//
// Tasks are addressed by their zero-based position in the current list.
// Positions are not stable: deleting index k moves every later task down by
// one, so callers must list again before reusing an index.
//
// Every mutation is applied to a copy of the list, the copy is saved, and
// only then does it replace the in-memory list. A failed save leaves the
// manager exactly as it was before the call.
//
// The task file is not locked. Two tt processes running at the same time
// can overwrite each other's changes.
package manager

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tt/internal/logging"
	"github.com/nibzard/tt/internal/store"
	"github.com/nibzard/tt/internal/todo"
	"github.com/nibzard/tt/internal/ttdir"
)

// Manager holds the task list and the store it is persisted to.
type Manager struct {
	store       store.Store
	todos       []todo.Todo
	logger      *log.Logger
	now         func() time.Time
	loadWarning error
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the time source used for new tasks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Open creates a Manager backed by the task file at path. An empty path
// selects ~/.tt/todos.json; if the home directory cannot be determined a
// *todo.ConfigError is returned.
func Open(path string, opts ...Option) (*Manager, error) {
	if path == "" {
		p, err := ttdir.DefaultStorePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return New(store.New(path), opts...), nil
}

// New creates a Manager and loads the task list from s. A load failure is
// not fatal: the list starts empty and the error is kept in LoadWarning.
func New(s store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	todos, err := s.Load()
	if err != nil {
		m.loadWarning = err
		m.logger.Warn("could not load todos, starting with an empty list", "path", s.Path(), "err", err)
		todos = nil
	}
	if todos == nil {
		todos = []todo.Todo{}
	}
	m.todos = todos
	m.logger.Debug("loaded todos", "path", s.Path(), "count", len(todos))
	return m
}

// LoadWarning returns the error that prevented the initial load, if any.
func (m *Manager) LoadWarning() error {
	return m.loadWarning
}

// Path returns where the task list is stored.
func (m *Manager) Path() string {
	return m.store.Path()
}

// Add validates priority, appends a new task and saves.
func (m *Manager) Add(title string, priority todo.Priority) (todo.Todo, error) {
	t, err := todo.NewAt(title, priority, m.now())
	if err != nil {
		return todo.Todo{}, err
	}

	next := m.snapshot()
	next = append(next, t)
	if err := m.commit(next); err != nil {
		return todo.Todo{}, err
	}
	m.logger.Debug("added todo", "index", len(next)-1, "priority", int(priority))
	return t, nil
}

// Edit changes the title and/or priority of the task at index. Nil fields
// are left alone. Every given field is validated before any is applied, so
// an invalid priority also discards the title change.
func (m *Manager) Edit(index int, title *string, priority *todo.Priority) (todo.Todo, error) {
	if err := m.checkIndex(index); err != nil {
		return todo.Todo{}, err
	}
	if priority != nil {
		if err := todo.ValidatePriority(*priority); err != nil {
			return todo.Todo{}, err
		}
	}

	return m.update(index, func(t *todo.Todo) error {
		if title != nil {
			t.Title = *title
		}
		if priority != nil {
			return t.SetPriority(*priority)
		}
		return nil
	})
}

// MarkCompleted marks the task at index as completed.
func (m *Manager) MarkCompleted(index int) (todo.Todo, error) {
	return m.update(index, func(t *todo.Todo) error {
		t.SetCompleted(true)
		return nil
	})
}

// MarkIncomplete marks the task at index as not completed.
func (m *Manager) MarkIncomplete(index int) (todo.Todo, error) {
	return m.update(index, func(t *todo.Todo) error {
		t.SetCompleted(false)
		return nil
	})
}

// Toggle flips the completed flag of the task at index.
func (m *Manager) Toggle(index int) (todo.Todo, error) {
	return m.update(index, func(t *todo.Todo) error {
		t.ToggleCompleted()
		return nil
	})
}

// Delete removes the task at index and returns it. Later tasks shift down
// by one position.
func (m *Manager) Delete(index int) (todo.Todo, error) {
	if err := m.checkIndex(index); err != nil {
		return todo.Todo{}, err
	}

	next := m.snapshot()
	removed := next[index]
	next = append(next[:index], next[index+1:]...)
	if err := m.commit(next); err != nil {
		return todo.Todo{}, err
	}
	m.logger.Debug("deleted todo", "index", index)
	return removed, nil
}

// Get returns the task at index.
func (m *Manager) Get(index int) (todo.Todo, bool) {
	if index < 0 || index >= len(m.todos) {
		return todo.Todo{}, false
	}
	return m.todos[index], true
}

// List returns a copy of all tasks in order.
func (m *Manager) List() []todo.Todo {
	return m.snapshot()
}

// Len returns the number of tasks.
func (m *Manager) Len() int {
	return len(m.todos)
}

// update applies fn to a copy of the task at index and commits it.
func (m *Manager) update(index int, fn func(*todo.Todo) error) (todo.Todo, error) {
	if err := m.checkIndex(index); err != nil {
		return todo.Todo{}, err
	}

	next := m.snapshot()
	if err := fn(&next[index]); err != nil {
		return todo.Todo{}, err
	}
	if err := m.commit(next); err != nil {
		return todo.Todo{}, err
	}
	m.logger.Debug("updated todo", "index", index, "completed", next[index].Completed)
	return next[index], nil
}

// commit saves next and, only on success, makes it the current list.
func (m *Manager) commit(next []todo.Todo) error {
	if err := m.store.Save(next); err != nil {
		m.logger.Error("save failed, changes discarded", "path", m.store.Path(), "err", err)
		return err
	}
	m.todos = next
	return nil
}

func (m *Manager) checkIndex(index int) error {
	if index < 0 || index >= len(m.todos) {
		return &todo.NotFoundError{Index: index, Len: len(m.todos)}
	}
	return nil
}

func (m *Manager) snapshot() []todo.Todo {
	out := make([]todo.Todo, len(m.todos))
	copy(out, m.todos)
	return out
}
