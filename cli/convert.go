package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ved/command"
	"ved/command/convert"
	"ved/config"
	"ved/videofiles"
)

func (a *App) newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [flags] EXTENSION VIDEO_PATH",
		Short: "Convert video file(s) from one format to another",
		Long: fmt.Sprintf(`Convert a video, or every video below a directory, to EXTENSION.

EXTENSION is one of: %s.
Without --all-extensions, files already in EXTENSION are skipped when
converting a directory. Without --audio-codec, ffmpeg picks the default
audio encoder of the target container.`, strings.Join(videofiles.VideoExtensions, ", ")),
		Example: "  ved convert mp4 clip.mkv\n  ved convert -a libvorbis -d out webm ./videos",
		Args:    exactArgs(2),
		RunE:    a.runConvert,
	}

	defaults := config.DefaultConfig()
	cmd.Flags().StringP(config.FlagConvertDir, "d", defaults.Convert.Dir, "directory to write converted files to")
	cmd.Flags().BoolP(config.FlagAllExtensions, "e", false, "include files already in EXTENSION")
	cmd.Flags().StringP(config.FlagAudioCodec, "a", "", "audio codec: "+strings.Join(convert.AudioCodecs, ", "))
	return cmd
}

func (a *App) runConvert(cmd *cobra.Command, args []string) error {
	ext := strings.ToLower(strings.TrimPrefix(args[0], "."))
	if !videofiles.IsVideoExtension(ext) {
		return usageErrorf("invalid EXTENSION %q: must be one of %s", args[0], strings.Join(videofiles.VideoExtensions, ", "))
	}

	paths, err := videoPaths(args[1], true)
	if err != nil {
		return err
	}
	if isDir(args[1]) && !a.cfg.Convert.AllExtensions {
		paths = videofiles.FilterExtension(paths, ext)
	}

	dir := a.cfg.Convert.Dir
	if err := a.mkdir(dir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted files will be written to: %s\n", dir)

	builders := make([]*convert.ConvertBuilder, 0, len(paths))
	for _, path := range paths {
		output := convert.OutputPath(path, dir, ext)
		builder := convert.NewConvertBuilder(path, output).
			SetAudioCodec(a.cfg.Convert.AudioCodec).
			SetProgressCallback(a.reportProgress)

		line, err := builder.DryRun()
		if err != nil {
			a.logger.Warn("skipping file", "path", path, "error", err)
			continue
		}
		a.logger.Debug("planned conversion", "command", line)

		fmt.Fprintf(out, "Converting file %s to %s\n", path, output)
		builders = append(builders, builder)
	}

	if a.cfg.DryRun || len(builders) == 0 {
		return nil
	}

	cmds := make([]command.Command, 0, len(builders))
	for _, builder := range builders {
		length, err := a.duration(cmd.Context(), builder.GetInputPath())
		if err != nil {
			a.logger.Warn("unknown duration, progress percentage unavailable", "path", builder.GetInputPath(), "error", err)
		} else {
			builder.SetLength(length)
		}
		cmds = append(cmds, builder)
	}
	return a.run(cmd.Context(), cmds...)
}
