package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/tt/internal/ttdir"
)

// expandPath expands $VAR references and a leading ~ in p. A ~ that cannot
// be resolved to a home directory is a *todo.ConfigError.
func expandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}

	expanded := os.ExpandEnv(p)
	rest, ok := trimHome(expanded)
	if !ok {
		return expanded, nil
	}
	home, err := ttdir.Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}

// trimHome strips a leading "~" or "~/" (also "~\" on Windows) and reports
// whether p was home-relative.
func trimHome(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if strings.HasPrefix(p, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)) {
		return p[2:], true
	}
	return "", false
}
