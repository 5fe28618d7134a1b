package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ved/config"
	"ved/videofiles"
)

func (a *App) newRandomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random [flags] VIDEO_PATH",
		Short: "Select video file(s) at random from video directory",
		Long: `Pick video files at random from below VIDEO_PATH and copy them to the
output directory. Without --max-items a random number of files is picked.
The same --seed always picks the same files from the same directory.`,
		Args: exactArgs(1),
		RunE: a.runRandom,
	}

	defaults := config.DefaultConfig()
	cmd.Flags().Int64P(config.FlagSeed, "s", defaults.Random.Seed, "seed for the random number generator (0 = from the clock)")
	cmd.Flags().IntP(config.FlagMaxItems, "k", defaults.Random.MaxItems, "maximum number of files to pick (-1 = random)")
	cmd.Flags().StringP(config.FlagOutputDir, "d", defaults.Random.Dir, "directory to copy picked files to")
	return cmd
}

func (a *App) runRandom(cmd *cobra.Command, args []string) error {
	paths, err := videoPaths(args[0], true)
	if err != nil {
		return err
	}
	if isDir(args[0]) {
		paths = videofiles.Sample(paths, a.cfg.Random.Seed, a.cfg.Random.MaxItems)
	}

	dir := a.cfg.Random.Dir
	if err := a.mkdir(dir); err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if a.cfg.DryRun {
		return nil
	}

	cmds := copyCommands(paths, dir)
	if len(cmds) == 0 {
		return nil
	}
	return a.run(cmd.Context(), cmds...)
}
