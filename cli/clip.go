package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ved/command/clip"
	"ved/config"
	"ved/internal/timeutil"
)

func (a *App) newClipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clip [flags] START STOP VIDEO_FILE",
		Short: "Extract clip from video file using start/stop time points",
		Long: `Extract the part of VIDEO_FILE between START and STOP.

START and STOP are HOUR:MINUTE:SECOND time stamps, e.g. 0:01:30.5.
The clip is named <stem>_clip_<START>_<STOP><ext> with the colons removed.`,
		Example: "  ved clip 0:00:10 0:00:25 talk.mp4\n  ved clip -d highlights 1:02:00 1:04:30.5 match.mkv",
		Args:    exactArgs(3),
		RunE:    a.runClip,
	}

	cmd.Flags().StringP(config.FlagClipDir, "d", config.DefaultConfig().Clip.Dir, "directory to write the clip to")
	return cmd
}

func (a *App) runClip(cmd *cobra.Command, args []string) error {
	start, err := timeutil.ParseTimestamp(args[0])
	if err != nil {
		return usageErrorf("invalid START: %v", err)
	}
	stop, err := timeutil.ParseTimestamp(args[1])
	if err != nil {
		return usageErrorf("invalid STOP: %v", err)
	}
	if stop.Seconds <= start.Seconds {
		return usageErrorf("STOP (%s) must be after START (%s)", stop, start)
	}

	paths, err := videoPaths(args[2], false)
	if err != nil {
		return err
	}
	source := paths[0]
	output := filepath.Join(a.cfg.Clip.Dir, clipName(source, start, stop))

	if a.cfg.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	if err := a.mkdir(a.cfg.Clip.Dir); err != nil {
		return err
	}

	builder := clip.NewClipBuilder(source, output, start.Seconds, stop.Seconds).
		SetProgressCallback(a.reportProgress)
	return a.run(cmd.Context(), builder)
}

// clipName returns <stem>_clip_<start>_<stop><ext> for source.
func clipName(source string, start, stop timeutil.Timestamp) string {
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(filepath.Base(source), ext)
	return fmt.Sprintf("%s_clip_%s_%s%s", stem, start.Compact(), stop.Compact(), ext)
}
