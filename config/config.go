package config

import (
	"runtime"
)

// Config holds all ved configuration options
type Config struct {
	// Execution settings
	LogLevel            string `yaml:"log_level"`             // trace, debug, info, warn, error, off
	Workers             int    `yaml:"workers"`               // 0 = auto-detect
	DryRun              bool   `yaml:"dry_run"`               // Print what would happen
	Debug               bool   `yaml:"debug"`                 // Force debug logging
	ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds"` // Per ffprobe invocation

	Clip    ClipConfig    `yaml:"clip"`
	Split   SplitConfig   `yaml:"split"`
	Convert ConvertConfig `yaml:"convert"`
	Random  RandomConfig  `yaml:"random"`
	Rename  RenameConfig  `yaml:"rename"`
}

// ClipConfig holds clip command settings
type ClipConfig struct {
	Dir string `yaml:"dir"`
}

// SplitConfig holds split command settings
type SplitConfig struct {
	Dir               string  `yaml:"dir"`
	Suffix            string  `yaml:"suffix"`             // Inserted before "N_of_M"
	LeftoverThreshold float64 `yaml:"leftover_threshold"` // Seconds; shorter tails are absorbed
}

// ConvertConfig holds convert command settings
type ConvertConfig struct {
	Dir           string `yaml:"dir"`
	AudioCodec    string `yaml:"audio_codec"`    // Empty = per-container default
	AllExtensions bool   `yaml:"all_extensions"` // Also convert files already in the target extension
}

// RandomConfig holds random command settings
type RandomConfig struct {
	Dir      string `yaml:"dir"`
	Seed     int64  `yaml:"seed"`      // 0 = seed from the clock
	MaxItems int    `yaml:"max_items"` // -1 = random count
}

// RenameConfig holds rename command settings
type RenameConfig struct {
	Append    string `yaml:"append"` // "prefix", "suffix" or empty
	Separator string `yaml:"separator"`
	Length    int    `yaml:"length"` // Random hex characters
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "warn",
		Workers:             0, // Auto-detect CPU count
		DryRun:              false,
		Debug:               false,
		ProbeTimeoutSeconds: 30,

		Clip: ClipConfig{
			Dir: "clip",
		},

		Split: SplitConfig{
			Dir:               "split",
			Suffix:            "_part_",
			LeftoverThreshold: 1.0,
		},

		Convert: ConvertConfig{
			Dir:           "converted",
			AudioCodec:    "",
			AllExtensions: false,
		},

		Random: RandomConfig{
			Dir:      "random",
			Seed:     0,
			MaxItems: -1,
		},

		Rename: RenameConfig{
			Append:    "",
			Separator: "_",
			Length:    16,
		},
	}
}

// Copy creates a deep copy of the config
func (c *Config) Copy() *Config {
	copy := *c
	return &copy
}

// EffectiveWorkers returns the worker count with 0 resolved to the CPU count
func (c *Config) EffectiveWorkers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// AppendValues returns valid rename.append values
func AppendValues() []string {
	return []string{"", "prefix", "suffix"}
}

// IsValidAppend checks if a rename.append value is valid
func IsValidAppend(value string) bool {
	for _, valid := range AppendValues() {
		if value == valid {
			return true
		}
	}
	return false
}
