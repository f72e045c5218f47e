package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Priority is an urgency tier; lower values are more urgent.
type Priority int

const (
	PriorityUrgent Priority = 1
	PriorityHigh   Priority = 2
	PriorityMedium Priority = 3
	PriorityLow    Priority = 4

	MinPriority     = PriorityUrgent
	MaxPriority     = PriorityLow
	DefaultPriority = PriorityLow
)

// Valid reports whether p is within [MinPriority, MaxPriority].
func (p Priority) Valid() bool {
	return p >= MinPriority && p <= MaxPriority
}

func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("P%d", int(p))
	}
}

// UnmarshalJSON accepts any JSON number with a whole value, so 2 and 2.0
// decode alike. Null leaves p unchanged.
func (p *Priority) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return fmt.Errorf("priority %s is not a whole number", data)
	}
	*p = Priority(f)
	return nil
}

// ValidatePriority returns a *ValidationError if p is out of range.
func ValidatePriority(p Priority) error {
	if !p.Valid() {
		return &ValidationError{Field: "priority", Value: int(p)}
	}
	return nil
}

// Todo is a single task in the list.
type Todo struct {
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	Priority  Priority  `json:"priority"`
}

// New creates an incomplete task stamped with the current UTC time.
func New(title string, priority Priority) (Todo, error) {
	return NewAt(title, priority, time.Now())
}

// NewAt is New with an explicit creation time.
func NewAt(title string, priority Priority, now time.Time) (Todo, error) {
	if err := ValidatePriority(priority); err != nil {
		return Todo{}, err
	}
	return Todo{
		Title:     title,
		CreatedAt: now.UTC(),
		Priority:  priority,
	}, nil
}

// SetPriority changes the priority. The task is left untouched on error.
func (t *Todo) SetPriority(p Priority) error {
	if err := ValidatePriority(p); err != nil {
		return err
	}
	t.Priority = p
	return nil
}

// ToggleCompleted flips the completed flag.
func (t *Todo) ToggleCompleted() {
	t.Completed = !t.Completed
}

// SetCompleted sets the completed flag.
func (t *Todo) SetCompleted(completed bool) {
	t.Completed = completed
}

// UnmarshalJSON decodes a task, defaulting a missing priority to
// DefaultPriority.
func (t *Todo) UnmarshalJSON(data []byte) error {
	type rawTodo Todo
	raw := rawTodo{Priority: DefaultPriority}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Todo(raw)
	return nil
}
