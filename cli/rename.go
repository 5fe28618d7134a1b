package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ved/command"
	"ved/command/file"
	"ved/config"
	"ved/videofiles"
)

// Rename patterns.
const (
	patternRandom   = "random"
	patternSanitize = "sanitize"
)

func (a *App) newRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename [flags] VIDEO_PATH random|sanitize",
		Short: "Rename video file(s) using various patterns",
		Long: `Rename a video, or every video below a directory, in place.

random   replaces the name with random hex characters; --append keeps the
         original name before (suffix) or after (prefix) the random part
sanitize removes characters that are invalid on common filesystems`,
		Example: "  ved rename ./videos random\n  ved -n rename -a prefix -l 8 talk.mp4 random",
		Args:    exactArgs(2),
		RunE:    a.runRename,
	}

	defaults := config.DefaultConfig()
	cmd.Flags().StringP(config.FlagAppend, "a", defaults.Rename.Append, "keep the original name: prefix or suffix")
	cmd.Flags().StringP(config.FlagSeparator, "p", defaults.Rename.Separator, "separator between name parts")
	cmd.Flags().IntP(config.FlagLength, "l", defaults.Rename.Length, "number of random characters")
	return cmd
}

func (a *App) runRename(cmd *cobra.Command, args []string) error {
	pattern := strings.ToLower(args[1])
	if pattern != patternRandom && pattern != patternSanitize {
		return usageErrorf("invalid pattern %q: must be %s or %s", args[1], patternRandom, patternSanitize)
	}

	paths, err := videoPaths(args[0], true)
	if err != nil {
		return err
	}

	rename := a.cfg.Rename
	cmds := make([]command.Command, 0, len(paths))
	for _, path := range paths {
		var target string
		if pattern == patternRandom {
			target = videofiles.RandomName(path, rename.Append, rename.Separator, rename.Length)
		} else {
			target = videofiles.SanitizedName(path)
		}

		move := file.NewMoveCommand(path, target)
		if a.cfg.DryRun {
			line, err := move.DryRun()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		cmds = append(cmds, move)
	}

	if a.cfg.DryRun || len(cmds) == 0 {
		return nil
	}
	return a.run(cmd.Context(), cmds...)
}
