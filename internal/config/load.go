package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tt/tt.toml or OS-specific config dir)
// 3. Environment variables
// 4. CLI flags
//
// Flags are defined on fs and parsed from args; remaining arguments are
// available from fs.Args afterwards.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	return load(fs, args, sources)
}

func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*ConfigWithSources, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	userConfigFile, err := findUserConfigFile()
	if err != nil {
		return nil, fmt.Errorf("locating config file: %w", err)
	}
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cfg.ConfigFile = userConfigFile
	}

	// 3. Override from environment
	loadFromEnv(cfg, sources, SourceEnv)

	// 4. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources, SourceFlag); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 5. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// loadConfigFile decodes TOML from path over cfg. Keys present in the file
// are recorded in sources when it is non-nil. Unknown keys are an error.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}

// finalizeConfig normalizes values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))

	// Expand ~ and env vars, then make the store path absolute
	if cfg.StoreFile != "" {
		expanded, err := expandPath(cfg.StoreFile)
		if err != nil {
			return fmt.Errorf("resolving store path: %w", err)
		}
		cfg.StoreFile = expanded
		if !filepath.IsAbs(cfg.StoreFile) {
			abs, err := filepath.Abs(cfg.StoreFile)
			if err != nil {
				return fmt.Errorf("resolving store path: %w", err)
			}
			cfg.StoreFile = abs
		}
	}

	return Validate(cfg)
}
