package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/tt/internal/config"
	"github.com/nibzard/tt/internal/todo"
)

// Styles holds the lipgloss styles for one output stream.
type Styles struct {
	Header   lipgloss.Style
	Index    lipgloss.Style
	Done     lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Cursor   lipgloss.Style
	priority map[todo.Priority]lipgloss.Style
}

// NewStyles builds styles bound to w. In auto mode the color profile is
// detected from w, so pipes and files get plain text.
func NewStyles(w io.Writer, mode string) *Styles {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	switch mode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header: r.NewStyle().Bold(true),
		Index:  r.NewStyle().Foreground(lipgloss.Color("245")),
		Done:   r.NewStyle().Faint(true).Strikethrough(true),
		Error:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:  r.NewStyle().Faint(true),
		Cursor: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		priority: map[todo.Priority]lipgloss.Style{
			todo.PriorityUrgent: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			todo.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("208")),
			todo.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("220")),
			todo.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("246")),
		},
	}
}

// Priority returns the style for a priority tier. Out-of-range values get
// the low tier.
func (s *Styles) Priority(p todo.Priority) lipgloss.Style {
	if st, ok := s.priority[p]; ok {
		return st
	}
	return s.priority[todo.PriorityLow]
}
