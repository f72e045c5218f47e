package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tt configuration file (~/.tt/tt.toml)
# Values can be overridden by TT_* environment variables or CLI flags

# Task file (supports ~ and $VAR expansion; default ~/.tt/todos.json)
# store_file = "~/.tt/todos.json"

# Color output: auto, always, or never
color = "auto"

# Logging (written to stderr)
# Level: debug, info, warn, error
log_level = "warn"
# Format: text, json, or logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
