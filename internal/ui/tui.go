// Package ui renders task lists for the terminal and provides the
// interactive list view.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tt/internal/config"
	"github.com/nibzard/tt/internal/todo"
)

// TaskList is the subset of the manager the TUI drives.
type TaskList interface {
	List() []todo.Todo
	Toggle(index int) (todo.Todo, error)
	Delete(index int) (todo.Todo, error)
	Edit(index int, title *string, priority *todo.Priority) (todo.Todo, error)
	Path() string
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	colorMode string
	out       io.Writer
	in        io.Reader
}

// WithColor sets the color mode (auto, always, never).
func WithColor(mode string) TUIOption {
	return func(c *tuiConfig) {
		c.colorMode = mode
	}
}

// WithIO replaces stdin and stdout. The TTY check still applies to out.
func WithIO(in io.Reader, out io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.in = in
		c.out = out
	}
}

// RunTUI starts the interactive list. It returns when the user quits or ctx
// is cancelled.
func RunTUI(ctx context.Context, tasks TaskList, opts ...TUIOption) error {
	c := &tuiConfig{
		colorMode: config.ColorAuto,
		out:       os.Stdout,
		in:        os.Stdin,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.out) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(tasks, NewStyles(c.out, c.colorMode))
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type tuiModel struct {
	tasks    TaskList
	styles   *Styles
	todos    []todo.Todo
	cursor   int
	status   string
	err      error
	showHelp bool
}

func newTUIModel(tasks TaskList, styles *Styles) *tuiModel {
	m := &tuiModel{tasks: tasks, styles: styles}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.todos)-1, 0)
	case " ", "enter", "x":
		m.toggle()
	case "d", "delete":
		m.delete()
	case "+", "=":
		m.shiftPriority(-1)
	case "-", "_":
		m.shiftPriority(1)
	case "r":
		m.refresh()
		m.status, m.err = "", nil
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.styles, m.tasks.Path())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.styles)
		return b.String()
	}

	if len(m.todos) == 0 {
		b.WriteString("  No todos yet. Add one with `tt add <title>`.\n\n")
	} else {
		width := len(fmt.Sprint(len(m.todos) - 1))
		for i, t := range m.todos {
			pointer := "  "
			if i == m.cursor {
				pointer = m.styles.Cursor.Render("> ")
			}
			b.WriteString(pointer + FormatRow(m.styles, i, width, t) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: "+m.err.Error()) + "\n\n")
	case m.status != "":
		b.WriteString(m.status + "\n\n")
	}

	writeFooter(&b, m.styles)
	return b.String()
}

func (m *tuiModel) refresh() {
	m.todos = m.tasks.List()
	if m.cursor >= len(m.todos) {
		m.cursor = max(len(m.todos)-1, 0)
	}
}

func (m *tuiModel) toggle() {
	if len(m.todos) == 0 {
		return
	}
	t, err := m.tasks.Toggle(m.cursor)
	m.after(err, fmt.Sprintf("🔄 %s is now %s", t.Title, stateLabel(t.Completed)))
}

func (m *tuiModel) delete() {
	if len(m.todos) == 0 {
		return
	}
	t, err := m.tasks.Delete(m.cursor)
	m.after(err, "🗑️  Deleted: "+t.Title)
}

// shiftPriority moves the selected task by delta tiers. A negative delta is
// more urgent.
func (m *tuiModel) shiftPriority(delta int) {
	if len(m.todos) == 0 {
		return
	}
	p := m.todos[m.cursor].Priority + todo.Priority(delta)
	t, err := m.tasks.Edit(m.cursor, nil, &p)
	m.after(err, fmt.Sprintf("Priority of %s is now P%d (%s)", t.Title, int(t.Priority), t.Priority))
}

func (m *tuiModel) after(err error, status string) {
	if err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.status = status
	m.refresh()
}

func writeTitle(b *strings.Builder, st *Styles, path string) {
	b.WriteString(st.Header.Render("tt") + "  " + st.Muted.Render(path) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j   Move\n")
	b.WriteString("  g, G           First / last\n")
	b.WriteString("  space, x       Toggle completed\n")
	b.WriteString("  d              Delete\n")
	b.WriteString("  +, -           Raise / lower priority\n")
	b.WriteString("  r              Refresh\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func writeFooter(b *strings.Builder, st *Styles) {
	b.WriteString(st.Muted.Render("space toggle | d delete | +/- priority | h help | q quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
