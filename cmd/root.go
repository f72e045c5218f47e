// Package cmd implements the CLI command structure for tt.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tt/internal/config"
	"github.com/nibzard/tt/internal/logging"
	"github.com/nibzard/tt/internal/manager"
	"github.com/nibzard/tt/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs.
type app struct {
	cfg     *config.ConfigWithSources
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
	printer *ui.Printer
}

// Run executes the tt CLI with the process's stdout and stderr.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the tt CLI writing command output to stdout and logs
// and usage to stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config

	a := &app{
		cfg:     cws,
		out:     stdout,
		errOut:  stderr,
		logger:  logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller),
		printer: ui.NewPrinter(stdout, cfg.Color),
	}

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	a.logger.Debug("dispatching", "command", subcommand, "config", cfg.ConfigFile)

	err = a.dispatch(ctx, fs, subcommand, remainingArgs)
	if errors.Is(err, flag.ErrHelp) {
		// Subcommand usage was already printed.
		return nil
	}
	return err
}

// dispatch executes the subcommand.
func (a *app) dispatch(ctx context.Context, fs *flag.FlagSet, subcommand string, remainingArgs []string) error {
	switch subcommand {
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "add":
		return a.addCommand(remainingArgs)
	case "edit":
		return a.editCommand(remainingArgs)
	case "complete", "done":
		return a.completeCommand(remainingArgs)
	case "incomplete", "undo":
		return a.incompleteCommand(remainingArgs)
	case "toggle":
		return a.toggleCommand(remainingArgs)
	case "delete", "rm":
		return a.deleteCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, a.out)
		return nil
	default:
		fmt.Fprintf(a.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, a.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openManager opens the task list named by the config.
func (a *app) openManager() (*manager.Manager, error) {
	m, err := manager.Open(a.cfg.Config.StoreFile, manager.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	// The logger already reported it unless its level hides warnings.
	if werr := m.LoadWarning(); werr != nil && a.logger.GetLevel() > log.WarnLevel {
		ui.NewPrinter(a.errOut, a.cfg.Config.Color).Warn(fmt.Sprintf("could not load todos from %s, starting empty (run `tt doctor`)", m.Path()))
	}
	return m, nil
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "tt version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tt - a personal todo list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tt [global options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list, ls                     List todos with their index (default command)")
	fmt.Fprintln(w, "  add <title> [-p N]           Add a todo (priority 1 urgent .. 4 low, default 4)")
	fmt.Fprintln(w, "  edit <index> [-t T] [-p N]   Change the title and/or priority of a todo")
	fmt.Fprintln(w, "  complete, done <index>       Mark a todo as completed")
	fmt.Fprintln(w, "  incomplete, undo <index>     Mark a todo as not completed")
	fmt.Fprintln(w, "  toggle <index>               Flip the completed state of a todo")
	fmt.Fprintln(w, "  delete, rm <index>           Delete a todo (later indices shift down)")
	fmt.Fprintln(w, "  tui                          Interactive list")
	fmt.Fprintln(w, "  doctor                       Check config and task file health")
	fmt.Fprintln(w, "  config [-example]            Show effective configuration")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Indices are positions in the current list and change after a delete;")
	fmt.Fprintln(w, "run `tt list` again before using an index.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
