package config

import (
	"math"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Check defaults
	if cfg.Workers != 0 {
		t.Errorf("Expected workers 0 (auto-detect), got %d", cfg.Workers)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected log level 'warn', got %s", cfg.LogLevel)
	}
	if cfg.Split.Suffix != "_part_" {
		t.Errorf("Expected split suffix '_part_', got %s", cfg.Split.Suffix)
	}
	if cfg.Split.LeftoverThreshold != 1.0 {
		t.Errorf("Expected leftover threshold 1.0, got %g", cfg.Split.LeftoverThreshold)
	}
	if cfg.Random.MaxItems != -1 {
		t.Errorf("Expected max items -1, got %d", cfg.Random.MaxItems)
	}
	if cfg.Rename.Length != 16 {
		t.Errorf("Expected rename length 16, got %d", cfg.Rename.Length)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(cfg *Config)
		expectError bool
		errorText   string
	}{
		{
			name:        "valid config",
			modify:      func(cfg *Config) {},
			expectError: false,
		},
		{
			name:        "invalid log level",
			modify:      func(cfg *Config) { cfg.LogLevel = "loud" },
			expectError: true,
			errorText:   "unknown log level",
		},
		{
			name:        "negative workers",
			modify:      func(cfg *Config) { cfg.Workers = -1 },
			expectError: true,
			errorText:   "workers cannot be negative",
		},
		{
			name:        "zero probe timeout",
			modify:      func(cfg *Config) { cfg.ProbeTimeoutSeconds = 0 },
			expectError: true,
			errorText:   "probe timeout must be positive",
		},
		{
			name:        "empty clip dir",
			modify:      func(cfg *Config) { cfg.Clip.Dir = "" },
			expectError: true,
			errorText:   "clip: dir is required",
		},
		{
			name:        "negative leftover threshold",
			modify:      func(cfg *Config) { cfg.Split.LeftoverThreshold = -0.5 },
			expectError: true,
			errorText:   "leftover threshold cannot be negative",
		},
		{
			name:        "infinite leftover threshold",
			modify:      func(cfg *Config) { cfg.Split.LeftoverThreshold = math.Inf(1) },
			expectError: true,
			errorText:   "leftover threshold must be finite",
		},
		{
			name:        "suffix with separator",
			modify:      func(cfg *Config) { cfg.Split.Suffix = "_a/b_" },
			expectError: true,
			errorText:   "suffix cannot contain path separators",
		},
		{
			name:        "unknown audio codec",
			modify:      func(cfg *Config) { cfg.Convert.AudioCodec = "opus" },
			expectError: true,
			errorText:   "invalid audio codec 'opus'",
		},
		{
			name:        "max items below -1",
			modify:      func(cfg *Config) { cfg.Random.MaxItems = -2 },
			expectError: true,
			errorText:   "max items cannot be below -1",
		},
		{
			name:        "negative seed",
			modify:      func(cfg *Config) { cfg.Random.Seed = -4 },
			expectError: true,
			errorText:   "seed cannot be negative",
		},
		{
			name:        "invalid append",
			modify:      func(cfg *Config) { cfg.Rename.Append = "middle" },
			expectError: true,
			errorText:   "invalid append 'middle'",
		},
		{
			name:        "short rename length",
			modify:      func(cfg *Config) { cfg.Rename.Length = 1 },
			expectError: true,
			errorText:   "length must be at least 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error containing '%s', got nil", tt.errorText)
				}
				if !strings.Contains(err.Error(), tt.errorText) {
					t.Errorf("Expected error containing '%s', got: %v", tt.errorText, err)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = -3
	cfg.Random.Dir = ""
	cfg.Rename.Length = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:") {
		t.Errorf("Unexpected error header: %s", msg)
	}
	if got := strings.Count(msg, "\n  - "); got != 3 {
		t.Errorf("Expected 3 problems, got %d in: %s", got, msg)
	}
}

func TestCopy(t *testing.T) {
	original := DefaultConfig()
	copied := original.Copy()

	copied.Split.Dir = "elsewhere"
	copied.Workers = 8

	if original.Split.Dir != "split" {
		t.Errorf("Copy shares split config with original: %s", original.Split.Dir)
	}
	if original.Workers != 0 {
		t.Errorf("Copy shares workers with original: %d", original.Workers)
	}
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.EffectiveWorkers(); got != runtime.NumCPU() {
		t.Errorf("Expected %d workers for auto-detect, got %d", runtime.NumCPU(), got)
	}

	cfg.Workers = 3
	if got := cfg.EffectiveWorkers(); got != 3 {
		t.Errorf("Expected 3 workers, got %d", got)
	}
}

func TestIsValidAppend(t *testing.T) {
	for _, value := range []string{"", "prefix", "suffix"} {
		if !IsValidAppend(value) {
			t.Errorf("Expected '%s' to be valid", value)
		}
	}
	if IsValidAppend("Prefix") {
		t.Error("Expected 'Prefix' to be invalid")
	}
}
