package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names shared by the command-line and MergeFromFlags.
const (
	FlagDryRun        = "dry-run"
	FlagDebug         = "debug"
	FlagWorkers       = "workers"
	FlagLogLevel      = "log-level"
	FlagClipDir       = "clip-dir"
	FlagSplitDir      = "split-dir"
	FlagSuffix        = "suffix"
	FlagConvertDir    = "convert-dir"
	FlagAllExtensions = "all-extensions"
	FlagAudioCodec    = "audio-codec"
	FlagOutputDir     = "output-dir"
	FlagSeed          = "seed"
	FlagMaxItems      = "max-items"
	FlagAppend        = "append"
	FlagSeparator     = "separator"
	FlagLength        = "length"
)

// MergeFromFlags overrides config values with the flags explicitly set in fs.
// Flags fs does not define, or that were left at their defaults, are ignored.
func (c *Config) MergeFromFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		switch f.Name {
		case FlagDryRun:
			c.DryRun, err = fs.GetBool(f.Name)
		case FlagDebug:
			c.Debug, err = fs.GetBool(f.Name)
		case FlagWorkers:
			c.Workers, err = fs.GetInt(f.Name)
		case FlagLogLevel:
			c.LogLevel, err = fs.GetString(f.Name)
		case FlagClipDir:
			c.Clip.Dir, err = fs.GetString(f.Name)
		case FlagSplitDir:
			c.Split.Dir, err = fs.GetString(f.Name)
		case FlagSuffix:
			c.Split.Suffix, err = fs.GetString(f.Name)
		case FlagConvertDir:
			c.Convert.Dir, err = fs.GetString(f.Name)
		case FlagAllExtensions:
			c.Convert.AllExtensions, err = fs.GetBool(f.Name)
		case FlagAudioCodec:
			c.Convert.AudioCodec, err = getLower(fs, f.Name)
		case FlagOutputDir:
			c.Random.Dir, err = fs.GetString(f.Name)
		case FlagSeed:
			c.Random.Seed, err = fs.GetInt64(f.Name)
		case FlagMaxItems:
			c.Random.MaxItems, err = fs.GetInt(f.Name)
		case FlagAppend:
			c.Rename.Append, err = getLower(fs, f.Name)
		case FlagSeparator:
			c.Rename.Separator, err = fs.GetString(f.Name)
		case FlagLength:
			c.Rename.Length, err = fs.GetInt(f.Name)
		}

		if err != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	return err
}

// getLower reads a choice flag, which is matched case-insensitively
func getLower(fs *pflag.FlagSet, name string) (string, error) {
	value, err := fs.GetString(name)
	return strings.ToLower(value), err
}

// PrintConfig writes the effective configuration
func (c *Config) PrintConfig(w io.Writer) {
	fmt.Fprintln(w, "Effective Configuration")
	fmt.Fprintf(w, "Log Level:      %s\n", c.LogLevel)
	fmt.Fprintf(w, "Workers:        %d\n", c.EffectiveWorkers())
	fmt.Fprintf(w, "Dry Run:        %v\n", c.DryRun)
	fmt.Fprintf(w, "Probe Timeout:  %d seconds\n", c.ProbeTimeoutSeconds)

	fmt.Fprintln(w, "\nClip:")
	fmt.Fprintf(w, "  Dir:          %s\n", c.Clip.Dir)

	fmt.Fprintln(w, "\nSplit:")
	fmt.Fprintf(w, "  Dir:          %s\n", c.Split.Dir)
	fmt.Fprintf(w, "  Suffix:       %s\n", c.Split.Suffix)
	fmt.Fprintf(w, "  Leftover:     %g seconds\n", c.Split.LeftoverThreshold)

	fmt.Fprintln(w, "\nConvert:")
	fmt.Fprintf(w, "  Dir:          %s\n", c.Convert.Dir)
	if c.Convert.AudioCodec != "" {
		fmt.Fprintf(w, "  Audio Codec:  %s\n", c.Convert.AudioCodec)
	}
	fmt.Fprintf(w, "  All Exts:     %v\n", c.Convert.AllExtensions)

	fmt.Fprintln(w, "\nRandom:")
	fmt.Fprintf(w, "  Dir:          %s\n", c.Random.Dir)
	fmt.Fprintf(w, "  Seed:         %d\n", c.Random.Seed)
	fmt.Fprintf(w, "  Max Items:    %d\n", c.Random.MaxItems)

	fmt.Fprintln(w, "\nRename:")
	if c.Rename.Append != "" {
		fmt.Fprintf(w, "  Append:       %s\n", c.Rename.Append)
	}
	fmt.Fprintf(w, "  Separator:    %q\n", c.Rename.Separator)
	fmt.Fprintf(w, "  Length:       %d\n", c.Rename.Length)
}
