package command

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"ved/ffmpeg"
	"ved/models"
)

// FFmpegBinary is the executable RunFFmpeg starts.
var FFmpegBinary = "ffmpeg"

// GlobalArgs returns the flags every ffmpeg invocation starts with. Parallel
// workers must not read the terminal, hence -nostdin.
func GlobalArgs() []string {
	return []string{"-hide_banner", "-nostdin"}
}

// RunFFmpeg runs ffmpeg with args. When callback is set, stderr is parsed
// for progress and each update is reported against length seconds of output.
// On failure the last lines ffmpeg printed are included in the error.
func RunFFmpeg(ctx context.Context, taskID string, args []string, length float64, callback models.ProgressCallback) error {
	cmd := exec.CommandContext(ctx, FFmpegBinary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stderr pipe")
	}
	cmd.Stdout = io.Discard

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start ffmpeg")
	}

	progress := models.NewProgress(taskID, length)
	if callback != nil {
		callback(progress)
	}

	parser := ffmpeg.NewProgressParser()
	streamErr := parser.StreamProgress(stderr, progress, callback)

	if err := cmd.Wait(); err != nil {
		progress.State = models.ProgressStateFailed
		if ctx.Err() != nil {
			progress.State = models.ProgressStateCancelled
			err = ctx.Err()
		}
		if callback != nil {
			callback(progress)
		}

		if tail := strings.TrimSpace(parser.Tail()); tail != "" {
			return errors.Wrapf(err, "ffmpeg failed: %s", tail)
		}
		return errors.Wrap(err, "ffmpeg failed")
	}

	if streamErr != nil {
		return streamErr
	}

	progress.State = models.ProgressStateCompleted
	progress.CalculateProgress(length)
	if callback != nil {
		callback(progress)
	}
	return nil
}

// Describe renders a dry-run line for the given program and arguments.
func Describe(program string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, program)
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t'\"") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
