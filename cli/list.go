package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [flags] VIDEO_PATH",
		Short: "Show video file(s) in selected path along with optional information",
		Args:  exactArgs(1),
		RunE:  a.runList,
	}

	cmd.Flags().BoolP("long", "l", false, "print duration and frame rate")
	return cmd
}

func (a *App) runList(cmd *cobra.Command, args []string) error {
	long, err := cmd.Flags().GetBool("long")
	if err != nil {
		return err
	}

	paths, err := videoPaths(args[0], true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, path := range paths {
		if !long {
			fmt.Fprintln(out, path)
			continue
		}

		result, err := a.prober.Probe(cmd.Context(), path)
		if err != nil {
			return err
		}
		duration, err := result.GetDuration()
		if err != nil {
			return err
		}
		fps, err := result.GetFrameRate()
		if err != nil {
			a.logger.Warn("no frame rate", "path", path, "error", err)
		}
		fmt.Fprintf(out, "%10.2fs %6.2ffps %s\n", duration, fps, path)
	}
	return nil
}
