package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// LoadConfig loads configuration with priority: CLI flags > Config file > Defaults.
// An empty path searches the standard locations; fs may be nil.
func LoadConfig(path string, fs *pflag.FlagSet) (*Config, error) {
	// 1. Start with defaults
	cfg := DefaultConfig()

	// 2. Find and load the config file
	if path == "" {
		path = FindConfigFile()
	}

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		// Merge file config (overwrites defaults)
		cfg = fileCfg
	}

	// 3. Merge CLI flags (highest priority, overwrites everything)
	if fs != nil {
		if err := cfg.MergeFromFlags(fs); err != nil {
			return nil, err
		}
	}

	// Validate final configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
