package models

import (
	"fmt"
	"time"
)

// Progress holds the live metrics of one running ffmpeg process.
type Progress struct {
	TaskID string

	Frame       int64
	FPS         float64
	CurrentTime string // HH:MM:SS.MS as reported by ffmpeg
	Speed       float64
	Size        string

	// Length is the expected output length in seconds. Zero when unknown,
	// e.g. for open-ended extractions of an unprobed source.
	Length  float64
	Percent float64

	State     ProgressState
	StartTime time.Time
	UpdatedAt time.Time
}

// ProgressState is the lifecycle state of a task.
type ProgressState string

const (
	ProgressStateQueued    ProgressState = "queued"
	ProgressStateRunning   ProgressState = "running"
	ProgressStateCompleted ProgressState = "completed"
	ProgressStateFailed    ProgressState = "failed"
	ProgressStateCancelled ProgressState = "cancelled"
)

// ProgressCallback receives progress updates while a command runs.
type ProgressCallback func(progress *Progress)

// NewProgress creates a queued progress tracker for an output of the given length.
func NewProgress(taskID string, length float64) *Progress {
	now := time.Now()
	return &Progress{
		TaskID:    taskID,
		Length:    length,
		State:     ProgressStateQueued,
		StartTime: now,
		UpdatedAt: now,
	}
}

// CalculateProgress updates Percent from the current output position, capped at 100.
func (p *Progress) CalculateProgress(currentSeconds float64) {
	if p.Length > 0 {
		p.Percent = (currentSeconds / p.Length) * 100
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	p.UpdatedAt = time.Now()
}

// EstimatedTimeRemaining extrapolates the remaining wall time from elapsed time
// and Percent. It returns 0 while no estimate is possible.
func (p *Progress) EstimatedTimeRemaining() time.Duration {
	if p.Speed <= 0 || p.Percent <= 0 {
		return 0
	}

	elapsed := time.Since(p.StartTime)
	total := time.Duration(float64(elapsed) / (p.Percent / 100))
	remaining := total - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatSummary returns a one-line human readable summary.
func (p *Progress) FormatSummary() string {
	return fmt.Sprintf(
		"%s: %.1f%% | speed %.2fx | size %s | eta %s",
		p.TaskID,
		p.Percent,
		p.Speed,
		p.Size,
		formatDuration(p.EstimatedTimeRemaining()),
	)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "calculating..."
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds = seconds % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
