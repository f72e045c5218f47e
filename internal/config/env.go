package config

import (
	"os"
	"strings"
)

// Environment variables read by loadFromEnv.
const (
	EnvStore         = "TT_STORE"
	EnvColor         = "TT_COLOR"
	EnvLogLevel      = "TT_LOG_LEVEL"
	EnvLogFormat     = "TT_LOG_FORMAT"
	EnvLogTimestamps = "TT_LOG_TIMESTAMPS"
	EnvLogCaller     = "TT_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv(EnvStore); v != "" {
		cfg.StoreFile = v
		set("store_file")
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = v
		set("color")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
