package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func newTestFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ved", pflag.ContinueOnError)
	fs.BoolP(FlagDryRun, "n", false, "")
	fs.BoolP(FlagDebug, "e", false, "")
	fs.IntP(FlagWorkers, "w", 0, "")
	fs.String(FlagLogLevel, "warn", "")
	fs.String(FlagSplitDir, "split", "")
	fs.String(FlagSuffix, "_part_", "")
	fs.Int64(FlagSeed, 0, "")
	fs.Int(FlagMaxItems, -1, "")
	fs.String(FlagAppend, "", "")
	fs.Int(FlagLength, 16, "")
	return fs
}

func TestMergeFromFlags_OnlyChangedFlags(t *testing.T) {
	fs := newTestFlagSet()
	if err := fs.Parse([]string{"-n", "--split-dir", "parts"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Split.Suffix = "_from_file_"
	cfg.Workers = 6

	if err := cfg.MergeFromFlags(fs); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !cfg.DryRun {
		t.Error("Expected dry run to be set by -n")
	}
	if cfg.Split.Dir != "parts" {
		t.Errorf("Expected split dir 'parts', got '%s'", cfg.Split.Dir)
	}
	// Unset flags must not clobber values loaded from a file
	if cfg.Split.Suffix != "_from_file_" {
		t.Errorf("Expected suffix '_from_file_', got '%s'", cfg.Split.Suffix)
	}
	if cfg.Workers != 6 {
		t.Errorf("Expected workers 6, got %d", cfg.Workers)
	}
}

func TestMergeFromFlags_AllFlags(t *testing.T) {
	fs := newTestFlagSet()
	args := []string{
		"--dry-run",
		"--debug",
		"--workers", "4",
		"--log-level", "info",
		"--suffix", "_p",
		"--seed", "42",
		"--max-items", "3",
		"--append", "SUFFIX",
		"--length", "8",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.MergeFromFlags(fs); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !cfg.DryRun || !cfg.Debug {
		t.Error("Expected dry run and debug to be set")
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected workers 4, got %d", cfg.Workers)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Split.Suffix != "_p" {
		t.Errorf("Expected suffix '_p', got '%s'", cfg.Split.Suffix)
	}
	if cfg.Random.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Random.Seed)
	}
	if cfg.Random.MaxItems != 3 {
		t.Errorf("Expected max items 3, got %d", cfg.Random.MaxItems)
	}
	if cfg.Rename.Append != "suffix" {
		t.Errorf("Expected append 'suffix', got '%s'", cfg.Rename.Append)
	}
	if cfg.Rename.Length != 8 {
		t.Errorf("Expected length 8, got %d", cfg.Rename.Length)
	}
}

func TestMergeFromFlags_IgnoresUnknownFlags(t *testing.T) {
	fs := pflag.NewFlagSet("ved", pflag.ContinueOnError)
	fs.Bool("long", false, "")
	if err := fs.Parse([]string{"--long"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.MergeFromFlags(fs); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Error("Expected config to be unchanged")
	}
}

func TestMergeFromFlags_TypeMismatch(t *testing.T) {
	// workers registered with the wrong type cannot be read back as an int
	fs := pflag.NewFlagSet("ved", pflag.ContinueOnError)
	fs.String(FlagWorkers, "", "")
	if err := fs.Parse([]string{"--workers", "many"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := DefaultConfig()
	err := cfg.MergeFromFlags(fs)
	if err == nil {
		t.Fatal("Expected error for mistyped flag, got nil")
	}
	if !strings.Contains(err.Error(), "--workers") {
		t.Errorf("Expected error naming --workers, got: %v", err)
	}
}

func TestPrintConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 2

	var buf bytes.Buffer
	cfg.PrintConfig(&buf)
	out := buf.String()

	for _, want := range []string{"Workers:        2", "Suffix:       _part_", "Max Items:    -1", `Separator:    "_"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
