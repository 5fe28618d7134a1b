// Package command provides the Command interface shared by every unit of work
// the orchestrator can schedule: ffmpeg extractions and conversions as well as
// plain file copies and moves.
package command

import "context"

// Priority levels for task execution. Higher priority tasks start first when
// several are ready at once.
const (
	PriorityLow    = 0
	PriorityNormal = 5
	PriorityHigh   = 10
)

// TaskType identifies what a command does.
type TaskType string

const (
	TaskTypeClip    TaskType = "clip"    // extract a time range with ffmpeg
	TaskTypeConvert TaskType = "convert" // re-encode into another container
	TaskTypeCopy    TaskType = "copy"    // copy a file into a directory
	TaskTypeMove    TaskType = "move"    // rename or move a file
)

// Command is a unit of work that can be built, executed, or previewed.
//
// Example usage:
//
//	segment := models.Segment{Index: 1, Total: 3, Start: 0, End: 600, Name: "talk__part_1_of_3.mp4"}
//	cmd := clip.NewClipBuilderFromSegment("talk.mp4", segment, "split")
//
//	preview, _ := cmd.DryRun()
//	err := cmd.Run(ctx)
type Command interface {
	// BuildArgs returns the arguments of the underlying process, suitable for
	// exec.CommandContext(ctx, "ffmpeg", args...). File commands return their
	// source and destination.
	BuildArgs() []string

	// Run executes the command and blocks until it completes or ctx is done.
	Run(ctx context.Context) error

	// DryRun describes the command without executing it. It returns an error
	// when the command cannot be built.
	DryRun() (string, error)

	// GetPriority returns the scheduling priority.
	GetPriority() int

	// SetPriority sets the scheduling priority and returns the Command.
	SetPriority(priority int) Command

	GetTaskType() TaskType
	GetInputPath() string
	GetOutputPath() string
}
