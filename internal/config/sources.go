package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/nibzard/tt/internal/ttdir"
)

// findUserConfigFile looks for a user-level config file.
// $TT_CONFIG wins when set. Otherwise ~/.tt/tt.toml is checked first, then
// the OS-specific config directory. An explicit path starting with ~ fails
// when there is no home directory.
func findUserConfigFile() (string, error) {
	if explicit := os.Getenv("TT_CONFIG"); explicit != "" {
		return expandPath(explicit)
	}

	// First try ~/.tt/tt.toml
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		userConfigPath := ttdir.ConfigPath(home)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath, nil
		}
	}

	// If ~/.tt/tt.toml doesn't exist, try OS-specific config directories
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "tt", ttdir.DefaultConfigFile)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath, nil
		}
	}

	return "", nil
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		// On Linux/BSD, respect XDG_CONFIG_HOME or use ~/.config
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreFile = ""
	cfg.Color = DefaultColor
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
