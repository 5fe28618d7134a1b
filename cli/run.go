package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"ved/command"
	"ved/models"
	"ved/orchestrator"
	"ved/videofiles"
)

// run executes cmds on a worker pool sized by the workers setting. Independent
// failures do not stop the other commands; they are reported together.
func (a *App) run(ctx context.Context, cmds ...command.Command) error {
	pool := orchestrator.NewWorkerPool(a.logger, a.cfg.EffectiveWorkers())
	for i, cmd := range cmds {
		id := fmt.Sprintf("%s_%d", cmd.GetTaskType(), i+1)
		if err := pool.Add(id, cmd); err != nil {
			return err
		}
	}

	started := time.Now()
	pool.SetProgressCallback(func(completed, total int, task *orchestrator.Task) {
		if task.Status == orchestrator.TaskFailed {
			a.logger.Error("task failed", "id", task.ID, "output", task.Command.GetOutputPath(), "error", task.Error)
			return
		}
		a.logger.Info("task completed",
			"id", task.ID,
			"output", task.Command.GetOutputPath(),
			"done", fmt.Sprintf("%d/%d", completed, total),
			"elapsed", time.Since(started).Round(time.Millisecond))
	})

	results, err := pool.Execute(ctx)
	stats := pool.GetStats()
	a.logger.Debug("pool finished", "total", stats.Total, "completed", stats.Completed, "failed", stats.Failed)
	if err != nil {
		return err
	}

	if failed := models.Failed(results); len(failed) > 0 {
		return errors.Wrapf(failed[0].Error, "%d of %d tasks failed, first", len(failed), len(results))
	}
	return nil
}

// reportProgress logs ffmpeg progress updates.
func (a *App) reportProgress(p *models.Progress) {
	switch p.State {
	case models.ProgressStateRunning:
		a.logger.Debug(p.FormatSummary())
	case models.ProgressStateCompleted:
		a.logger.Debug("encode finished", "task", p.TaskID, "elapsed", time.Since(p.StartTime).Round(time.Millisecond))
	}
}

// videoPaths resolves a VIDEO_PATH argument to the video files it names.
// Directories are searched recursively when allowDir is set.
func videoPaths(path string, allowDir bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, usageErrorf("path %q does not exist", path)
	}
	if info.IsDir() && !allowDir {
		return nil, usageErrorf("path %q is a directory", path)
	}
	if !info.IsDir() && !videofiles.IsVideoFile(path) {
		return nil, usageErrorf("path %q is not a video file (extensions: %s)", path, strings.Join(videofiles.VideoExtensions, ", "))
	}
	return videofiles.Resolve(path)
}

// mkdir creates dir unless this is a dry run.
func (a *App) mkdir(dir string) error {
	if a.cfg.DryRun {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
