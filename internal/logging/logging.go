// Package logging builds the hclog.Logger shared by every command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Levels are the accepted values of --log-level and log_level.
var Levels = []string{"trace", "debug", "info", "warn", "error", "off"}

// ParseLevel converts a level name, case-insensitively, to an hclog.Level.
func ParseLevel(level string) (hclog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	for _, l := range Levels {
		if l == name {
			return hclog.LevelFromString(name), nil
		}
	}
	return hclog.NoLevel, errors.Errorf("unknown log level %q (valid: %s)", level, strings.Join(Levels, ", "))
}

// New creates a logger writing to w, or stderr when w is nil. debug forces
// the debug level. An unknown level falls back to warn.
func New(level string, debug bool, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = hclog.Warn
	}
	if debug && lvl > hclog.Debug {
		lvl = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "ved",
		Level:  lvl,
		Output: w,
		Color:  hclog.AutoColor,
	})
}
