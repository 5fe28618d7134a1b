// Package models provides the value types shared by the planner, the command
// builders and the orchestrator.
package models

import (
	"fmt"
	"math"
)

// Segment describes one part of a split plan.
//
// Segments are produced by the planner and are never mutated afterwards.
// Index is 1-based and Total is the same for every segment of a plan.
//
// When OpenEnded is true the part runs through the end of the source and the
// extraction must not pass an end bound. End still carries the source
// duration so that coverage of a plan can be checked.
type Segment struct {
	Index      int     `json:"index"`
	Total      int     `json:"total"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	OpenEnded  bool    `json:"open_ended"`
	Name       string  `json:"name"`
	SourcePath string  `json:"source_path,omitempty"`
}

// Length returns the length of the segment in seconds.
func (s Segment) Length() float64 {
	return s.End - s.Start
}

// IsLast reports whether the segment is the final part of its plan.
func (s Segment) IsLast() bool {
	return s.Index == s.Total
}

// Validate checks the segment for internally consistent values.
//
// Returns an error if:
//   - Index is not in 1..Total
//   - Start is negative or not finite
//   - End is not after Start
//   - OpenEnded is set on a segment that is not the last one
//   - Name is empty
func (s Segment) Validate() error {
	if s.Total < 1 {
		return fmt.Errorf("total must be at least 1, got %d", s.Total)
	}

	if s.Index < 1 || s.Index > s.Total {
		return fmt.Errorf("index %d out of range 1..%d", s.Index, s.Total)
	}

	if math.IsNaN(s.Start) || math.IsInf(s.Start, 0) || s.Start < 0 {
		return fmt.Errorf("start must be a non-negative number, got %v", s.Start)
	}

	if math.IsNaN(s.End) || math.IsInf(s.End, 0) || s.End <= s.Start {
		return fmt.Errorf("end must be greater than start (%.3f), got %v", s.Start, s.End)
	}

	if s.OpenEnded && !s.IsLast() {
		return fmt.Errorf("only the last segment can be open ended (index %d of %d)", s.Index, s.Total)
	}

	if s.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	return nil
}

// String implements fmt.Stringer.
func (s Segment) String() string {
	end := fmt.Sprintf("%.3f", s.End)
	if s.OpenEnded {
		end = "end"
	}
	return fmt.Sprintf("%d/%d [%.3f, %s) %s", s.Index, s.Total, s.Start, end, s.Name)
}
