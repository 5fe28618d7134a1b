package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// errHelpShown stops a command after its help was printed for missing args.
var errHelpShown = errors.New("help shown")

// UsageError reports a bad invocation: a malformed argument, a missing path,
// an unknown choice or flag.
type UsageError struct {
	err error
}

func (e *UsageError) Error() string { return e.err.Error() }

func (e *UsageError) Unwrap() error { return e.err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{err: err}
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

// exactArgs prints help when no arguments are given and otherwise requires
// exactly n of them.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			if err := cmd.Help(); err != nil {
				return err
			}
			return errHelpShown
		}
		return usageError(cobra.ExactArgs(n)(cmd, args))
	}
}

// rangeArgs is exactArgs for commands taking between min and max arguments.
func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && min > 0 {
			if err := cmd.Help(); err != nil {
				return err
			}
			return errHelpShown
		}
		return usageError(cobra.RangeArgs(min, max)(cmd, args))
	}
}
