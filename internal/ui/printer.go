package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tt/internal/todo"
)

// Printer writes the one-shot command output.
type Printer struct {
	w  io.Writer
	st *Styles
}

// NewPrinter returns a Printer writing to w with the given color mode.
func NewPrinter(w io.Writer, colorMode string) *Printer {
	return &Printer{w: w, st: NewStyles(w, colorMode)}
}

// List prints every task with its current index.
func (p *Printer) List(todos []todo.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(p.w, "📝 No todos found. Add one with `tt add <title>`")
		return
	}
	fmt.Fprintln(p.w, p.st.Header.Render("📝 Your todos:"))
	width := len(fmt.Sprint(len(todos) - 1))
	for i, t := range todos {
		fmt.Fprintln(p.w, "  "+FormatRow(p.st, i, width, t))
	}
}

// Added prints the confirmation for a new task.
func (p *Printer) Added(t todo.Todo) {
	fmt.Fprintf(p.w, "✅ Added todo: %s %s\n", t.Title, p.priorityTag(t.Priority))
}

// Edited prints the confirmation for an edit.
func (p *Printer) Edited(index int, t todo.Todo) {
	fmt.Fprintf(p.w, "✏️  Updated %d: %s %s\n", index, t.Title, p.priorityTag(t.Priority))
}

// Completed prints the confirmation for a task marked done.
func (p *Printer) Completed(t todo.Todo) {
	fmt.Fprintf(p.w, "✅ Marked as completed: %s\n", t.Title)
}

// Incomplete prints the confirmation for a task marked not done.
func (p *Printer) Incomplete(t todo.Todo) {
	fmt.Fprintf(p.w, "⏳ Marked as incomplete: %s\n", t.Title)
}

// Toggled prints the new state of a toggled task.
func (p *Printer) Toggled(t todo.Todo) {
	fmt.Fprintf(p.w, "🔄 Toggled: %s is now %s\n", t.Title, stateLabel(t.Completed))
}

// Deleted prints the confirmation for a removed task.
func (p *Printer) Deleted(t todo.Todo) {
	fmt.Fprintf(p.w, "🗑️  Deleted: %s\n", t.Title)
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, "⚠️  "+msg)
}

func (p *Printer) priorityTag(pr todo.Priority) string {
	return p.st.Priority(pr).Render(fmt.Sprintf("(P%d %s)", int(pr), pr))
}

// FormatRow renders one list row: index, status icon, priority and title.
func FormatRow(st *Styles, index, width int, t todo.Todo) string {
	icon := "⏳"
	title := st.Priority(t.Priority).Render(t.Title)
	if t.Completed {
		icon = "✅"
		title = st.Done.Render(t.Title)
	}
	idx := st.Index.Render(fmt.Sprintf("%*d", width, index))
	prio := st.Priority(t.Priority).Render(fmt.Sprintf("P%d", int(t.Priority)))
	return strings.Join([]string{idx, "[" + icon + "]", prio, title}, " ")
}

func stateLabel(completed bool) string {
	if completed {
		return "✅ completed"
	}
	return "⏳ incomplete"
}
