// Package convert builds ffmpeg commands that re-encode a video into another
// container.
package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"ved/command"
	"ved/models"
)

// AudioCodecs are the audio codecs a conversion may request.
var AudioCodecs = []string{"aac", "libmp3lame", "libvorbis"}

// DefaultVideoCodecs maps a target extension, without the dot, to the video
// encoder used when writing it.
var DefaultVideoCodecs = map[string]string{
	"mp4":  "libx264",
	"mkv":  "libx264",
	"mov":  "libx264",
	"webm": "libvpx",
	"ogv":  "libtheora",
	"avi":  "mpeg4",
}

// IsAudioCodec reports whether codec is one of AudioCodecs.
func IsAudioCodec(codec string) bool {
	for _, c := range AudioCodecs {
		if c == codec {
			return true
		}
	}
	return false
}

// OutputPath returns dir/<stem of sourcePath>.<ext>.
func OutputPath(sourcePath, dir, ext string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"."+strings.TrimPrefix(ext, "."))
}

// ConvertBuilder re-encodes a whole source file.
type ConvertBuilder struct {
	taskID     string
	sourcePath string
	outputPath string

	// length of the source in seconds, zero when unknown
	length float64

	videoCodec       string
	audioCodec       string
	priority         int
	progressCallback models.ProgressCallback
}

// NewConvertBuilder creates a builder writing sourcePath to outputPath. The
// video codec defaults from the output extension. No audio codec is passed
// unless one is set, so ffmpeg uses the container's default.
func NewConvertBuilder(sourcePath, outputPath string) *ConvertBuilder {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	return &ConvertBuilder{
		taskID:     filepath.Base(outputPath),
		sourcePath: sourcePath,
		outputPath: outputPath,
		videoCodec: DefaultVideoCodecs[ext],
		priority:   command.PriorityNormal,
	}
}

// SetAudioCodec sets the audio codec. Empty leaves the choice to ffmpeg.
func (c *ConvertBuilder) SetAudioCodec(codec string) *ConvertBuilder {
	c.audioCodec = codec
	return c
}

// SetLength sets the source length used for progress percentages.
func (c *ConvertBuilder) SetLength(seconds float64) *ConvertBuilder {
	c.length = seconds
	return c
}

// SetProgressCallback sets a callback for progress updates.
func (c *ConvertBuilder) SetProgressCallback(callback models.ProgressCallback) *ConvertBuilder {
	c.progressCallback = callback
	return c
}

// SetPriority sets the task priority.
func (c *ConvertBuilder) SetPriority(priority int) command.Command {
	c.priority = priority
	return c
}

// Validate checks paths and codecs.
func (c *ConvertBuilder) Validate() error {
	if strings.TrimSpace(c.sourcePath) == "" {
		return errors.New("source path cannot be empty")
	}
	if strings.TrimSpace(c.outputPath) == "" {
		return errors.New("output path cannot be empty")
	}
	if filepath.Clean(c.sourcePath) == filepath.Clean(c.outputPath) {
		return errors.Errorf("refusing to convert %s onto itself", c.sourcePath)
	}
	if c.audioCodec != "" && !IsAudioCodec(c.audioCodec) {
		return errors.Errorf("unsupported audio codec %q (supported: %s)", c.audioCodec, strings.Join(AudioCodecs, ", "))
	}
	return nil
}

// BuildArgs compiles the ffmpeg arguments.
func (c *ConvertBuilder) BuildArgs() []string {
	outputArgs := ffmpeg.KwArgs{}
	if c.videoCodec != "" {
		outputArgs["c:v"] = c.videoCodec
	}
	if c.audioCodec != "" {
		outputArgs["c:a"] = c.audioCodec
	}

	args := ffmpeg.Input(c.sourcePath).
		Output(c.outputPath, outputArgs).
		OverWriteOutput().
		GetArgs()
	return append(command.GlobalArgs(), args...)
}

// Run executes the conversion.
func (c *ConvertBuilder) Run(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "cannot run convert")
	}
	return command.RunFFmpeg(ctx, c.taskID, c.BuildArgs(), c.length, c.progressCallback)
}

// DryRun returns the ffmpeg invocation without running it.
func (c *ConvertBuilder) DryRun() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return command.Describe(command.FFmpegBinary, c.BuildArgs()), nil
}

// GetPriority returns the task priority.
func (c *ConvertBuilder) GetPriority() int {
	return c.priority
}

// GetTaskType returns the task type.
func (c *ConvertBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeConvert
}

// GetInputPath returns the source path.
func (c *ConvertBuilder) GetInputPath() string {
	return c.sourcePath
}

// GetOutputPath returns the output path.
func (c *ConvertBuilder) GetOutputPath() string {
	return c.outputPath
}
