package config

import (
	"fmt"
	"math"
	"strings"

	"ved/command/convert"
	"ved/internal/logging"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate workers (0 is valid, means auto-detect)
	if c.Workers < 0 {
		errors = append(errors, "workers cannot be negative (use 0 for auto-detect)")
	}

	if c.ProbeTimeoutSeconds <= 0 {
		errors = append(errors, "probe timeout must be positive")
	}

	if c.Clip.Dir == "" {
		errors = append(errors, "clip: dir is required")
	}

	if err := c.Split.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("split config: %v", err))
	}

	if err := c.Convert.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("convert config: %v", err))
	}

	if err := c.Random.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("random config: %v", err))
	}

	if err := c.Rename.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("rename config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if split configuration is valid
func (sc *SplitConfig) Validate() error {
	var errors []string

	if sc.Dir == "" {
		errors = append(errors, "dir is required")
	}

	if math.IsNaN(sc.LeftoverThreshold) || sc.LeftoverThreshold < 0 {
		errors = append(errors, "leftover threshold cannot be negative")
	}

	// checked against the part length when a split is planned
	if math.IsInf(sc.LeftoverThreshold, 1) {
		errors = append(errors, "leftover threshold must be finite")
	}

	if strings.ContainsAny(sc.Suffix, `/\`) {
		errors = append(errors, "suffix cannot contain path separators")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if convert configuration is valid
func (cc *ConvertConfig) Validate() error {
	var errors []string

	if cc.Dir == "" {
		errors = append(errors, "dir is required")
	}

	if cc.AudioCodec != "" && !convert.IsAudioCodec(cc.AudioCodec) {
		errors = append(errors, fmt.Sprintf("invalid audio codec '%s', must be one of: %s",
			cc.AudioCodec, strings.Join(convert.AudioCodecs, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if random configuration is valid
func (rc *RandomConfig) Validate() error {
	var errors []string

	if rc.Dir == "" {
		errors = append(errors, "dir is required")
	}

	if rc.Seed < 0 {
		errors = append(errors, "seed cannot be negative (use 0 to seed from the clock)")
	}

	if rc.MaxItems < -1 {
		errors = append(errors, "max items cannot be below -1 (use -1 for a random count)")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if rename configuration is valid
func (rc *RenameConfig) Validate() error {
	var errors []string

	if !IsValidAppend(rc.Append) {
		errors = append(errors, fmt.Sprintf("invalid append '%s', must be prefix or suffix", rc.Append))
	}

	if rc.Length < 2 {
		errors = append(errors, "length must be at least 2")
	}

	if strings.ContainsAny(rc.Separator, `/\`) {
		errors = append(errors, "separator cannot contain path separators")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}
