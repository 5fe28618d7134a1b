// Package file implements commands that copy or move files without ffmpeg.
package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"ved/command"
	"ved/videofiles"
)

// CopyCommand copies a file into a directory, keeping its base name.
type CopyCommand struct {
	sourcePath string
	outputDir  string
	priority   int
}

// NewCopyCommand creates a command copying sourcePath into outputDir.
func NewCopyCommand(sourcePath, outputDir string) *CopyCommand {
	return &CopyCommand{
		sourcePath: sourcePath,
		outputDir:  outputDir,
		priority:   command.PriorityNormal,
	}
}

// BuildArgs returns the source and destination directory.
func (c *CopyCommand) BuildArgs() []string {
	return []string{c.sourcePath, c.outputDir}
}

// Run performs the copy.
func (c *CopyCommand) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	_, err := videofiles.CopyInto(c.sourcePath, c.outputDir)
	return err
}

// DryRun describes the copy.
func (c *CopyCommand) DryRun() (string, error) {
	return fmt.Sprintf("Copying file: %s -> %s", c.sourcePath, c.outputDir), nil
}

// GetPriority returns the task priority.
func (c *CopyCommand) GetPriority() int {
	return c.priority
}

// SetPriority sets the task priority.
func (c *CopyCommand) SetPriority(priority int) command.Command {
	c.priority = priority
	return c
}

// GetTaskType returns the task type.
func (c *CopyCommand) GetTaskType() command.TaskType {
	return command.TaskTypeCopy
}

// GetInputPath returns the source path.
func (c *CopyCommand) GetInputPath() string {
	return c.sourcePath
}

// GetOutputPath returns the destination file path.
func (c *CopyCommand) GetOutputPath() string {
	return filepath.Join(c.outputDir, filepath.Base(c.sourcePath))
}

// MoveCommand renames a file. It never overwrites an existing destination.
type MoveCommand struct {
	sourcePath string
	outputPath string
	priority   int
}

// NewMoveCommand creates a command moving sourcePath to outputPath.
func NewMoveCommand(sourcePath, outputPath string) *MoveCommand {
	return &MoveCommand{
		sourcePath: sourcePath,
		outputPath: outputPath,
		priority:   command.PriorityNormal,
	}
}

// BuildArgs returns the source and destination.
func (m *MoveCommand) BuildArgs() []string {
	return []string{m.sourcePath, m.outputPath}
}

// Run performs the move. Moving a file onto itself is a no-op.
func (m *MoveCommand) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if filepath.Clean(m.sourcePath) == filepath.Clean(m.outputPath) {
		return nil
	}
	return videofiles.Move(m.sourcePath, m.outputPath)
}

// DryRun describes the move.
func (m *MoveCommand) DryRun() (string, error) {
	return fmt.Sprintf("Renaming: %s -> %s", m.sourcePath, m.outputPath), nil
}

// GetPriority returns the task priority.
func (m *MoveCommand) GetPriority() int {
	return m.priority
}

// SetPriority sets the task priority.
func (m *MoveCommand) SetPriority(priority int) command.Command {
	m.priority = priority
	return m
}

// GetTaskType returns the task type.
func (m *MoveCommand) GetTaskType() command.TaskType {
	return command.TaskTypeMove
}

// GetInputPath returns the source path.
func (m *MoveCommand) GetInputPath() string {
	return m.sourcePath
}

// GetOutputPath returns the destination path.
func (m *MoveCommand) GetOutputPath() string {
	return m.outputPath
}
