package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadConfigFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	yamlContent := `
log_level: "info"
workers: 4
split:
  dir: "parts"
  leftover_threshold: 2.5
convert:
  audio_codec: "libvorbis"
random:
  seed: 7
rename:
  append: "prefix"
  separator: "-"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfigFile(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected workers 4, got %d", cfg.Workers)
	}
	if cfg.Split.Dir != "parts" {
		t.Errorf("Expected split dir 'parts', got '%s'", cfg.Split.Dir)
	}
	if cfg.Split.LeftoverThreshold != 2.5 {
		t.Errorf("Expected leftover threshold 2.5, got %g", cfg.Split.LeftoverThreshold)
	}
	if cfg.Convert.AudioCodec != "libvorbis" {
		t.Errorf("Expected audio codec 'libvorbis', got '%s'", cfg.Convert.AudioCodec)
	}
	if cfg.Random.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Random.Seed)
	}
	if cfg.Rename.Append != "prefix" || cfg.Rename.Separator != "-" {
		t.Errorf("Expected rename prefix/'-', got %s/'%s'", cfg.Rename.Append, cfg.Rename.Separator)
	}

	// Fields absent from the file keep their defaults
	if cfg.Split.Suffix != "_part_" {
		t.Errorf("Expected default suffix '_part_', got '%s'", cfg.Split.Suffix)
	}
	if cfg.Random.MaxItems != -1 {
		t.Errorf("Expected default max items -1, got %d", cfg.Random.MaxItems)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	badPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badPath, []byte("workers: [1, 2\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	_, err := LoadConfigFile(badPath)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestSaveConfigFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ved.yaml")

	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.Split.LeftoverThreshold = 0.25
	cfg.Rename.Append = "suffix"

	if err := SaveConfigFile(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
}

func TestFindConfigFile_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "ved.yml"), []byte("workers: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if got := FindConfigFile(); got != "./ved.yml" {
		t.Errorf("Expected './ved.yml', got '%s'", got)
	}
}

func TestLoadConfig_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ved.yaml")
	content := "workers: 3\nsplit:\n  dir: from-file\n  suffix: _seg_\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("ved", pflag.ContinueOnError)
	fs.String(FlagSplitDir, "split", "")
	fs.String(FlagSuffix, "_part_", "")
	if err := fs.Parse([]string{"--split-dir", "from-flag"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := LoadConfig(path, fs)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Split.Dir != "from-flag" {
		t.Errorf("Expected flag to win, got '%s'", cfg.Split.Dir)
	}
	if cfg.Split.Suffix != "_seg_" {
		t.Errorf("Expected file value '_seg_', got '%s'", cfg.Split.Suffix)
	}
	if cfg.Workers != 3 {
		t.Errorf("Expected workers 3, got %d", cfg.Workers)
	}
	if cfg.Clip.Dir != "clip" {
		t.Errorf("Expected default clip dir, got '%s'", cfg.Clip.Dir)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ved.yaml")
	if err := os.WriteFile(path, []byte("workers: -2\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadConfig(path, nil)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "workers cannot be negative") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfig_InfiniteLeftoverThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ved.yaml")
	if err := os.WriteFile(path, []byte("split:\n  leftover_threshold: .inf\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := LoadConfig(path, nil)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "leftover threshold must be finite") {
		t.Errorf("Unexpected error: %v", err)
	}
}
