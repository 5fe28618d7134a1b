// Package clip builds ffmpeg commands that extract a time range of a video.
package clip

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"ved/command"
	"ved/internal/timeutil"
	"ved/models"
)

// PreferredAudioCodecs maps a container extension, without the dot, to the
// audio codec its outputs are written with.
var PreferredAudioCodecs = map[string]string{
	"mp4": "aac",
}

// PreferredAudioCodec returns the preferred audio codec for path, or "" to
// leave the choice to ffmpeg.
func PreferredAudioCodec(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return PreferredAudioCodecs[ext]
}

// ClipBuilder extracts [start, end) of a source into an output file. An
// open-ended clip runs from start through the end of the source.
type ClipBuilder struct {
	taskID     string
	sourcePath string
	outputPath string

	start     float64
	end       float64
	openEnded bool

	audioCodec       string
	priority         int
	progressCallback models.ProgressCallback
}

// NewClipBuilder creates a builder for [start, end) of sourcePath.
func NewClipBuilder(sourcePath, outputPath string, start, end float64) *ClipBuilder {
	return &ClipBuilder{
		taskID:     filepath.Base(outputPath),
		sourcePath: sourcePath,
		outputPath: outputPath,
		start:      start,
		end:        end,
		audioCodec: PreferredAudioCodec(outputPath),
		priority:   command.PriorityNormal,
	}
}

// NewClipBuilderFromSegment creates a builder writing segment into outputDir.
func NewClipBuilderFromSegment(sourcePath string, segment models.Segment, outputDir string) *ClipBuilder {
	b := NewClipBuilder(sourcePath, filepath.Join(outputDir, segment.Name), segment.Start, segment.End)
	b.openEnded = segment.OpenEnded
	return b
}

// SetTaskID sets the identifier reported with progress updates.
func (c *ClipBuilder) SetTaskID(taskID string) *ClipBuilder {
	c.taskID = taskID
	return c
}

// SetProgressCallback sets a callback for progress updates.
func (c *ClipBuilder) SetProgressCallback(callback models.ProgressCallback) *ClipBuilder {
	c.progressCallback = callback
	return c
}

// SetPriority sets the task priority.
func (c *ClipBuilder) SetPriority(priority int) command.Command {
	c.priority = priority
	return c
}

// Validate checks the clip bounds and paths.
func (c *ClipBuilder) Validate() error {
	if strings.TrimSpace(c.sourcePath) == "" {
		return errors.New("source path cannot be empty")
	}
	if strings.TrimSpace(c.outputPath) == "" {
		return errors.New("output path cannot be empty")
	}
	if c.start < 0 {
		return errors.Errorf("start must be non-negative, got %.3f", c.start)
	}
	if !c.openEnded && c.end <= c.start {
		return errors.Errorf("end (%.3f) must be greater than start (%.3f)", c.end, c.start)
	}
	return nil
}

// Length returns the expected output length in seconds.
func (c *ClipBuilder) Length() float64 {
	if c.end <= c.start {
		return 0
	}
	return c.end - c.start
}

// BuildArgs compiles the ffmpeg arguments. The seek is placed before the
// input and the length as -t, so open-ended clips simply omit -t.
func (c *ClipBuilder) BuildArgs() []string {
	inputArgs := ffmpeg.KwArgs{}
	if c.start > 0 {
		inputArgs["ss"] = formatSeconds(c.start)
	}

	outputArgs := ffmpeg.KwArgs{}
	if !c.openEnded {
		outputArgs["t"] = formatSeconds(c.end - c.start)
	}
	if c.audioCodec != "" {
		outputArgs["c:a"] = c.audioCodec
	}

	args := ffmpeg.Input(c.sourcePath, inputArgs).
		Output(c.outputPath, outputArgs).
		OverWriteOutput().
		GetArgs()
	return append(command.GlobalArgs(), args...)
}

// Run executes the extraction.
func (c *ClipBuilder) Run(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "cannot run clip")
	}
	return command.RunFFmpeg(ctx, c.taskID, c.BuildArgs(), c.Length(), c.progressCallback)
}

// DryRun returns the ffmpeg invocation without running it.
func (c *ClipBuilder) DryRun() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return command.Describe(command.FFmpegBinary, c.BuildArgs()), nil
}

// GetPriority returns the task priority.
func (c *ClipBuilder) GetPriority() int {
	return c.priority
}

// GetTaskType returns the task type.
func (c *ClipBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeClip
}

// GetInputPath returns the source path.
func (c *ClipBuilder) GetInputPath() string {
	return c.sourcePath
}

// GetOutputPath returns the output path.
func (c *ClipBuilder) GetOutputPath() string {
	return c.outputPath
}

// String describes the clip for logs.
func (c *ClipBuilder) String() string {
	end := "end"
	if !c.openEnded {
		end = timeutil.FormatSeconds(c.end)
	}
	return fmt.Sprintf("%s [%s, %s) -> %s", c.sourcePath, timeutil.FormatSeconds(c.start), end, c.outputPath)
}

// formatSeconds renders seconds the way ffmpeg's duration parser accepts
// them, without trailing zeros.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds*1e6)/1e6, 'f', -1, 64)
}
