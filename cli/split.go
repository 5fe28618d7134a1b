package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ved/command"
	"ved/command/clip"
	"ved/config"
	"ved/internal/timeutil"
	"ved/models"
	"ved/planner"
)

func (a *App) newSplitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [flags] LENGTH VIDEO_PATH",
		Short: "Split video file(s) into parts of maximum length",
		Long: `Split a video, or every video below a directory, into parts no longer
than LENGTH, an HOUR:MINUTE:SECOND time stamp.

Parts are named <stem>_<suffix><N>_of_<TOTAL><ext>. A remainder shorter than
the leftover threshold (1 second by default) is absorbed into the last part
instead of becoming a part of its own. A threshold above 1 second must be
shorter than LENGTH.`,
		Example: "  ved split 0:10:00 lecture.mp4\n  ved -n split -s _seg_ 0:00:30 ./videos",
		Args:    exactArgs(2),
		RunE:    a.runSplit,
	}

	defaults := config.DefaultConfig()
	cmd.Flags().StringP(config.FlagSuffix, "s", defaults.Split.Suffix, "suffix for part names")
	cmd.Flags().StringP(config.FlagSplitDir, "d", defaults.Split.Dir, "directory to write parts to")
	return cmd
}

func (a *App) runSplit(cmd *cobra.Command, args []string) error {
	length, err := timeutil.ParseTimestamp(args[0])
	if err != nil {
		return usageErrorf("invalid LENGTH: %v", err)
	}
	if length.Seconds <= 0 {
		return usageErrorf("LENGTH (%s) must be positive", length)
	}

	paths, err := videoPaths(args[1], true)
	if err != nil {
		return err
	}

	p := planner.NewPlanner(length.Seconds).
		SetSuffix(a.cfg.Split.Suffix).
		SetLeftoverThreshold(a.cfg.Split.LeftoverThreshold)
	if err := p.ValidateSettings(); err != nil {
		return usageErrorf("LENGTH %s with split.leftover_threshold %g: %v", length, a.cfg.Split.LeftoverThreshold, err)
	}

	dir := a.cfg.Split.Dir
	if err := a.mkdir(dir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range paths {
		fmt.Fprintf(out, "Splitting file #%d/%d\n", i+1, len(paths))

		result, err := a.prober.Probe(cmd.Context(), path)
		if err != nil {
			return err
		}
		segments, err := a.plan(p, result, path)
		if err != nil {
			return err
		}
		duration, err := result.GetDuration()
		if err != nil {
			return err
		}
		if err := p.Validate(segments, duration); err != nil {
			return errors.Wrapf(err, "invalid split plan for %s", path)
		}
		a.logger.Debug("planned split",
			"path", path,
			"parts", len(segments),
			"part_length", timeutil.FormatSeconds(p.PartLength()),
			"duration", timeutil.FormatSeconds(duration))

		if a.cfg.DryRun {
			for _, segment := range segments {
				fmt.Fprintf(out, "%10s %10s %s\n", formatOffset(segment.Start), segmentEnd(segment), filepath.Join(dir, segment.Name))
			}
		} else {
			cmds := make([]command.Command, 0, len(segments))
			for _, segment := range segments {
				builder := clip.NewClipBuilderFromSegment(path, segment, dir).
					SetTaskID(segment.Name).
					SetProgressCallback(a.reportProgress)
				a.logger.Debug("queued part", "part", builder.String())
				cmds = append(cmds, builder)
			}
			if err := a.run(cmd.Context(), cmds...); err != nil {
				return err
			}
		}

		fmt.Fprintln(out)
	}
	return nil
}

func formatOffset(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// segmentEnd returns the end offset, or "end" for a part running through the
// end of the source.
func segmentEnd(segment models.Segment) string {
	if segment.OpenEnded {
		return "end"
	}
	return formatOffset(segment.End)
}
