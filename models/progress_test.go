package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProgress(t *testing.T) {
	progress := NewProgress("split_1", 30.0)

	assert.Equal(t, "split_1", progress.TaskID)
	assert.Equal(t, 30.0, progress.Length)
	assert.Equal(t, ProgressStateQueued, progress.State)
	assert.False(t, progress.StartTime.IsZero(), "StartTime should be set")
	assert.False(t, progress.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

func TestProgress_CalculateProgress(t *testing.T) {
	progress := NewProgress("clip", 30.0)

	tests := []struct {
		name            string
		currentSeconds  float64
		expectedPercent float64
	}{
		{"zero progress", 0, 0.0},
		{"halfway", 15.0, 50.0},
		{"complete", 30.0, 100.0},
		{"over 100%", 35.0, 100.0},
		{"fractional", 10.5, 35.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress.CalculateProgress(tt.currentSeconds)
			assert.InDelta(t, tt.expectedPercent, progress.Percent, 1e-9)
		})
	}
}

func TestProgress_CalculateProgress_UnknownLength(t *testing.T) {
	progress := NewProgress("clip", 0)
	progress.CalculateProgress(15.0)

	assert.Equal(t, 0.0, progress.Percent)
}

func TestProgress_EstimatedTimeRemaining(t *testing.T) {
	progress := NewProgress("clip", 30.0)
	progress.StartTime = time.Now().Add(-10 * time.Second)
	progress.Speed = 2.0
	progress.Percent = 50.0

	eta := progress.EstimatedTimeRemaining()

	// half done after ten seconds leaves roughly ten more
	assert.True(t, eta > 9*time.Second && eta < 11*time.Second, "Expected ETA around 10s, got %v", eta)
}

func TestProgress_EstimatedTimeRemaining_NoEstimate(t *testing.T) {
	t.Run("no progress", func(t *testing.T) {
		progress := NewProgress("clip", 30.0)
		progress.Speed = 1.0
		assert.Equal(t, time.Duration(0), progress.EstimatedTimeRemaining())
	})

	t.Run("no speed", func(t *testing.T) {
		progress := NewProgress("clip", 30.0)
		progress.Percent = 50.0
		assert.Equal(t, time.Duration(0), progress.EstimatedTimeRemaining())
	})
}

func TestProgress_FormatSummary(t *testing.T) {
	progress := NewProgress("split_2", 30.0)
	progress.Percent = 50.0
	progress.Speed = 2.5
	progress.Size = "256kB"

	summary := progress.FormatSummary()

	assert.Contains(t, summary, "split_2")
	assert.Contains(t, summary, "50.0%")
	assert.Contains(t, summary, "2.50x")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "calculating..."},
		{"5 seconds", 5 * time.Second, "5s"},
		{"1 minute 30 seconds", 90 * time.Second, "1m30s"},
		{"1 hour", 3600 * time.Second, "1h0m0s"},
		{"1 hour 23 minutes 45 seconds", 5025 * time.Second, "1h23m45s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
