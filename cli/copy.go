package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ved/command"
	"ved/command/file"
)

func (a *App) newCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy VIDEO_PATH OUTPUT_PATH",
		Short: "Copy video file(s) from one directory to another",
		Args:  exactArgs(2),
		RunE:  a.runCopy,
	}
}

func (a *App) runCopy(cmd *cobra.Command, args []string) error {
	paths, err := videoPaths(args[0], true)
	if err != nil {
		return err
	}
	outputDir := args[1]
	if err := a.mkdir(outputDir); err != nil {
		return err
	}

	cmds := copyCommands(paths, outputDir)
	for _, c := range cmds {
		line, err := c.DryRun()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if a.cfg.DryRun || len(cmds) == 0 {
		return nil
	}
	return a.run(cmd.Context(), cmds...)
}

func copyCommands(paths []string, dir string) []command.Command {
	cmds := make([]command.Command, 0, len(paths))
	for _, path := range paths {
		cmds = append(cmds, file.NewCopyCommand(path, dir))
	}
	return cmds
}
