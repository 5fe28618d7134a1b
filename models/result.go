package models

import (
	"fmt"
	"strings"
)

// Result represents the outcome of a single extraction or conversion task.
//
// Successful results carry an output path and no error. Failed results carry
// the error and the output path that was attempted, so callers can clean up
// partial files.
//
// Use NewResultSuccess or NewResultFailure to create validated instances.
type Result struct {
	TaskID     string `json:"task_id"`
	OutputPath string `json:"output_path"`
	Success    bool   `json:"success"`
	Error      error  `json:"-"`
}

// NewResultSuccess creates a successful Result.
//
// Returns an error if outputPath is empty or whitespace-only.
func NewResultSuccess(taskID, outputPath string) (*Result, error) {
	r := &Result{
		TaskID:     taskID,
		OutputPath: outputPath,
		Success:    true,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid result: %w", err)
	}
	return r, nil
}

// NewResultFailure creates a failed Result. The error must not be nil.
func NewResultFailure(taskID, outputPath string, taskErr error) (*Result, error) {
	if taskErr == nil {
		return nil, fmt.Errorf("invalid result: error cannot be nil for failed result")
	}
	return &Result{
		TaskID:     taskID,
		OutputPath: outputPath,
		Success:    false,
		Error:      taskErr,
	}, nil
}

// Validate checks that Success and Error agree and that successful results
// name their output.
func (r *Result) Validate() error {
	if r.Success && r.Error != nil {
		return fmt.Errorf("inconsistent state: Success is true but Error is not nil")
	}

	if !r.Success && r.Error == nil {
		return fmt.Errorf("failed result must have an error")
	}

	if r.Success && strings.TrimSpace(r.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty for successful result")
	}

	return nil
}

// Failed returns the failed results, preserving order.
func Failed(results []*Result) []*Result {
	var failed []*Result
	for _, r := range results {
		if r != nil && !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
