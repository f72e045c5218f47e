// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tt/tt.toml or OS-specific config directory)
// 3. Environment variables (TT_*)
// 4. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - $TT_CONFIG when set
// - ~/.tt/tt.toml (preferred)
// - Windows: %APPDATA%\tt\tt.toml
// - macOS: ~/Library/Application Support/tt/tt.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tt/tt.toml or ~/.config/tt/tt.toml
//
// The task file location itself is not resolved here. An empty StoreFile
// means the default under the home directory, which is resolved when the
// task list is opened.
package config
