package cli

import (
	"github.com/spf13/cobra"

	"ved/config"
)

func (a *App) newRootCommand() *cobra.Command {
	defaults := config.DefaultConfig()

	root := &cobra.Command{
		Use:   "ved",
		Short: "Batch video file operations",
		Long: `ved clips, splits, converts, copies, samples and renames video files.

Encoding is delegated to ffmpeg and ffprobe, which must be on PATH.
Settings are read from ved.yaml (or --config) and overridden by flags.`,
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			return usageError(cobra.NoArgs(cmd, args))
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.BoolP(config.FlagDryRun, "n", false, "simulate running commands")
	flags.Bool(config.FlagDebug, false, "turn on debug logging")
	flags.StringVar(&a.configPath, "config", "", "config file (default: search ./ved.yaml, ~/.ved, /etc/ved)")
	flags.IntP(config.FlagWorkers, "w", defaults.Workers, "parallel ffmpeg processes (0 = number of CPUs)")
	flags.String(config.FlagLogLevel, defaults.LogLevel, "log level: trace, debug, info, warn, error, off")

	root.AddCommand(
		a.newClipCommand(),
		a.newListCommand(),
		a.newSplitCommand(),
		a.newCopyCommand(),
		a.newConvertCommand(),
		a.newRandomCommand(),
		a.newRenameCommand(),
		a.newConfigCommand(),
	)
	return root
}
