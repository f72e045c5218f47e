package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/tt/internal/todo"
	"github.com/nibzard/tt/internal/ui"
)

// newFlagSet returns a subcommand flag set that reports to the app's stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tt "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// listCommand prints every todo with its current index.
func (a *app) listCommand(args []string) error {
	fs := a.newFlagSet("list")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	m, err := a.openManager()
	if err != nil {
		return err
	}
	a.printer.List(m.List())
	return nil
}

// addCommand appends a new todo.
func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	priority := fs.Int("p", int(todo.DefaultPriority), "Priority: 1 urgent, 2 high, 3 medium, 4 low")
	fs.IntVar(priority, "priority", int(todo.DefaultPriority), "Priority (alias for -p)")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		return fmt.Errorf("usage: tt add <title> [-p N]")
	}
	p := todo.Priority(*priority)
	if err := todo.ValidatePriority(p); err != nil {
		return err
	}

	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.Add(title, p)
	if err != nil {
		return err
	}
	a.printer.Added(t)
	return nil
}

// editCommand changes the title and/or priority of one todo.
func (a *app) editCommand(args []string) error {
	fs := a.newFlagSet("edit")
	title := fs.String("t", "", "New title")
	fs.StringVar(title, "title", "", "New title (alias for -t)")
	priority := fs.Int("p", 0, "New priority: 1 urgent, 2 high, 3 medium, 4 low")
	fs.IntVar(priority, "priority", 0, "New priority (alias for -p)")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	index, err := singleIndex("edit", rest)
	if err != nil {
		return err
	}

	var newTitle *string
	var newPriority *todo.Priority
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t", "title":
			newTitle = title
		case "p", "priority":
			p := todo.Priority(*priority)
			newPriority = &p
		}
	})
	if newTitle == nil && newPriority == nil {
		return fmt.Errorf("nothing to change: pass -t <title> and/or -p <priority>")
	}
	if newTitle != nil && strings.TrimSpace(*newTitle) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if newPriority != nil {
		if err := todo.ValidatePriority(*newPriority); err != nil {
			return err
		}
	}

	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.Edit(index, newTitle, newPriority)
	if err != nil {
		return err
	}
	a.printer.Edited(index, t)
	return nil
}

func (a *app) completeCommand(args []string) error {
	index, err := a.indexArg("complete", args)
	if err != nil {
		return err
	}
	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.MarkCompleted(index)
	if err != nil {
		return err
	}
	a.printer.Completed(t)
	return nil
}

func (a *app) incompleteCommand(args []string) error {
	index, err := a.indexArg("incomplete", args)
	if err != nil {
		return err
	}
	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.MarkIncomplete(index)
	if err != nil {
		return err
	}
	a.printer.Incomplete(t)
	return nil
}

func (a *app) toggleCommand(args []string) error {
	index, err := a.indexArg("toggle", args)
	if err != nil {
		return err
	}
	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.Toggle(index)
	if err != nil {
		return err
	}
	a.printer.Toggled(t)
	return nil
}

func (a *app) deleteCommand(args []string) error {
	index, err := a.indexArg("delete", args)
	if err != nil {
		return err
	}
	m, err := a.openManager()
	if err != nil {
		return err
	}
	t, err := m.Delete(index)
	if err != nil {
		return err
	}
	a.printer.Deleted(t)
	return nil
}

// tuiCommand launches the interactive list.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	m, err := a.openManager()
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, m, ui.WithColor(a.cfg.Config.Color), ui.WithIO(os.Stdin, a.out))
}

// indexArg parses a command that takes exactly one index and no flags.
func (a *app) indexArg(name string, args []string) (int, error) {
	rest, err := parseInterspersed(a.newFlagSet(name), args)
	if err != nil {
		return 0, err
	}
	return singleIndex(name, rest)
}

func singleIndex(name string, rest []string) (int, error) {
	if len(rest) != 1 {
		return 0, fmt.Errorf("usage: tt %s <index>", name)
	}
	index, err := strconv.Atoi(rest[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a number", rest[0])
	}
	return index, nil
}

// parseInterspersed parses flags that may appear before, between or after
// positional arguments and returns the positionals in order. Negative
// numbers are positionals unless they are the value of a preceding flag.
// Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var flags, positional []string

scan:
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			break scan
		case isFlagArg(arg):
			flags = append(flags, arg)
			name, hasValue := splitFlag(arg)
			if !hasValue && flagNeedsValue(fs, name) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positional = append(positional, arg)
		}
	}

	if err := fs.Parse(flags); err != nil {
		return nil, err
	}
	return positional, nil
}

func isFlagArg(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.Atoi(arg)
	return err != nil
}

func splitFlag(arg string) (name string, hasValue bool) {
	name = strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true
	}
	return name, false
}

func flagNeedsValue(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}
