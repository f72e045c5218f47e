package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nibzard/tt/internal/config"
	"github.com/nibzard/tt/internal/store"
	"github.com/nibzard/tt/internal/ttdir"
)

// errDoctorFailed is returned when at least one check failed.
var errDoctorFailed = errors.New("doctor found problems")

// doctorCommand reports on the config and the task file.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("unexpected arguments: %v", rest[1:])
	}

	cfg := a.cfg.Config
	storePath := cfg.StoreFile
	if len(rest) == 1 {
		storePath, err = filepath.Abs(rest[0])
		if err != nil {
			return fmt.Errorf("resolving %s: %w", rest[0], err)
		}
	}

	w := a.out
	fmt.Fprintln(w, "tt doctor")
	fmt.Fprintln(w, "=========")
	fmt.Fprintln(w)

	allOK := true

	// Check home directory
	home, homeErr := ttdir.Home()
	if homeErr != nil {
		fmt.Fprintf(w, "Home directory:\n  ❌ %v\n\n", homeErr)
		allOK = false
	} else {
		fmt.Fprintf(w, "Home directory: %s\n  ✅ OK\n\n", home)
	}

	// Check config
	fmt.Fprintln(w, "Config:")
	if cfg.ConfigFile == "" {
		fmt.Fprintln(w, "  ✅ File: none (built-in defaults)")
	} else {
		fmt.Fprintf(w, "  ✅ File: %s\n", cfg.ConfigFile)
	}
	fmt.Fprintf(w, "  ✅ Color: %s\n", cfg.Color)
	fmt.Fprintf(w, "  ✅ Log: level=%s format=%s\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Fprintln(w)

	// Check task file
	if storePath == "" {
		if homeErr != nil {
			fmt.Fprintln(w, "Task file:")
			fmt.Fprintln(w, "  ❌ Cannot resolve the default location without a home directory")
			fmt.Fprintln(w)
			return errDoctorFailed
		}
		storePath = ttdir.StorePath(home)
	}
	if !checkStore(a, storePath) {
		allOK = false
	}

	if !allOK {
		return errDoctorFailed
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

// checkStore prints the task file report and returns false on a failure.
func checkStore(a *app, path string) bool {
	w := a.out
	fmt.Fprintf(w, "Task file: %s\n", path)

	report, err := store.New(path).Check()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Cannot read: %v\n\n", err)
		return false
	}
	if !report.Exists {
		fmt.Fprintln(w, "  ⚠️  Not created yet (it is written on the first change)")
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			fmt.Fprintf(w, "  ❌ Parent %s is not a directory\n\n", dir)
			return false
		}
		fmt.Fprintln(w)
		return true
	}

	ok := true
	if report.OwnerOnly() {
		fmt.Fprintf(w, "  ✅ Permissions: %04o\n", report.Mode.Perm())
	} else {
		fmt.Fprintf(w, "  ⚠️  Permissions: %04o (expected owner-only, e.g. 0600)\n", report.Mode.Perm())
	}
	if report.Valid() {
		fmt.Fprintf(w, "  ✅ Valid: %d todo(s)\n", report.Count)
	} else {
		fmt.Fprintln(w, "  ❌ Invalid:")
		for _, problem := range report.Problems {
			fmt.Fprintf(w, "     - %s\n", problem)
		}
		ok = false
	}
	fmt.Fprintln(w)
	return ok
}

// configCommand prints the effective configuration and where each value
// came from, or an example config file.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example config file")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	cfg := a.cfg.Config
	values := map[string]string{
		"store_file":     cfg.StoreFile,
		"color":          cfg.Color,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": fmt.Sprint(cfg.LogTimestamps),
		"log_caller":     fmt.Sprint(cfg.LogCaller),
	}
	if values["store_file"] == "" {
		values["store_file"] = "(default ~/.tt/todos.json)"
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if cfg.ConfigFile != "" {
		fmt.Fprintf(a.out, "# config file: %s\n", cfg.ConfigFile)
	}
	for _, k := range keys {
		fmt.Fprintf(a.out, "%-15s %-30s # %s\n", k, values[k], a.cfg.Sources[k])
	}
	return nil
}
