// Package planner computes how a video of a given duration is split into
// parts of bounded length.
//
// Planning is a pure computation: no I/O, no shared state. A Planner can be
// used from any number of goroutines.
package planner

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"ved/models"
)

const (
	// DefaultSuffix is placed between the base name and the part number.
	DefaultSuffix = "_part_"

	// DefaultLeftoverThreshold is the shortest trailing remainder, in seconds,
	// that gets a part of its own. Shorter remainders are absorbed.
	DefaultLeftoverThreshold = 1.0

	// CoverageTolerance is the gap or overlap allowed between adjacent parts.
	CoverageTolerance = 1e-6

	// MaxParts bounds the size of a single plan.
	MaxParts = 10_000_000

	// ratios this close to a whole number are treated as whole
	ratioEpsilon = 1e-9
)

// ErrInvalidArgument is returned for a non-positive or non-finite part length,
// a negative or non-finite duration and an unusable leftover threshold.
var ErrInvalidArgument = errors.New("invalid argument")

// Planner splits durations into parts of at most partLength seconds.
type Planner struct {
	partLength        float64
	suffix            string
	leftoverThreshold float64
}

// NewPlanner creates a Planner with the default suffix and leftover threshold.
func NewPlanner(partLength float64) *Planner {
	return &Planner{
		partLength:        partLength,
		suffix:            DefaultSuffix,
		leftoverThreshold: DefaultLeftoverThreshold,
	}
}

// SetSuffix sets the token placed before the part number in part names.
func (p *Planner) SetSuffix(suffix string) *Planner {
	p.suffix = suffix
	return p
}

// SetLeftoverThreshold sets the shortest remainder that becomes its own part.
func (p *Planner) SetLeftoverThreshold(seconds float64) *Planner {
	p.leftoverThreshold = seconds
	return p
}

// PartLength returns the configured maximum part length in seconds.
func (p *Planner) PartLength() float64 {
	return p.partLength
}

// Plan partitions [0, duration) into parts named
// "{baseName}_{suffix}{index}_of_{total}{ext}".
//
// When the remainder after the last whole part is at least the leftover
// threshold it becomes a final open-ended part. Otherwise the remainder is
// absorbed and the last part ends exactly at total*partLength.
//
// A zero duration yields an empty plan and no error.
func (p *Planner) Plan(duration float64, baseName, ext string) ([]models.Segment, error) {
	if err := p.validateInputs(duration); err != nil {
		return nil, err
	}

	if duration == 0 {
		return []models.Segment{}, nil
	}

	ratio := duration / p.partLength
	if ratio > MaxParts {
		return nil, fmt.Errorf("%w: part length %g is too small for duration %g (more than %d parts)",
			ErrInvalidArgument, p.partLength, duration, MaxParts)
	}
	if rounded := math.Round(ratio); math.Abs(ratio-rounded) < ratioEpsilon*math.Max(1, ratio) {
		ratio = rounded
	}

	whole := math.Floor(ratio)
	leftover := math.Abs(ratio-whole) * p.partLength

	var total int
	openEnded := leftover >= p.leftoverThreshold
	if openEnded {
		total = int(math.Ceil(ratio))
	} else {
		total = int(whole)
	}

	// A sub-threshold source shorter than one part still gets one part.
	if total == 0 {
		total = 1
		openEnded = true
	}

	termination := float64(total) * p.partLength
	segments := make([]models.Segment, 0, total)

	for part := 0; part < total; part++ {
		index := part + 1
		start := p.partLength * float64(part)
		end := p.partLength * float64(part+1)

		last := index == total
		if last {
			if openEnded {
				end = duration
			} else {
				end = termination
			}
		}

		segments = append(segments, models.Segment{
			Index:     index,
			Total:     total,
			Start:     start,
			End:       end,
			OpenEnded: last && openEnded,
			Name:      PartName(baseName, p.suffix, index, total, ext),
		})
	}

	return segments, nil
}

// PlanFile plans the file at sourcePath using the duration reported by info.
//
// Example:
//
//	probeResult, _ := prober.Probe(ctx, "/videos/talk.mp4")
//	parts, err := planner.NewPlanner(600).PlanFile(probeResult, "/videos/talk.mp4")
func (p *Planner) PlanFile(info MediaInfo, sourcePath string) ([]models.Segment, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return nil, fmt.Errorf("source path cannot be empty")
	}

	if info == nil {
		return nil, fmt.Errorf("media info cannot be nil")
	}

	duration, err := info.GetDuration()
	if err != nil {
		return nil, fmt.Errorf("failed to get duration: %w", err)
	}

	ext := filepath.Ext(sourcePath)
	baseName := strings.TrimSuffix(filepath.Base(sourcePath), ext)

	segments, err := p.Plan(duration, baseName, ext)
	if err != nil {
		return nil, err
	}

	for i := range segments {
		segments[i].SourcePath = sourcePath
	}

	return segments, nil
}

// Validate checks that segments form a complete plan of duration: indexes
// 1..total, a shared total, contiguous ranges starting at 0, and a last part
// that either runs through the end or stops short of it by less than the
// leftover threshold.
func (p *Planner) Validate(segments []models.Segment, duration float64) error {
	if err := p.ValidateSettings(); err != nil {
		return err
	}

	if len(segments) == 0 {
		if duration > 0 {
			return fmt.Errorf("empty plan for a %.3f second source", duration)
		}
		return nil
	}

	total := segments[0].Total
	if total != len(segments) {
		return fmt.Errorf("plan declares %d parts but has %d", total, len(segments))
	}

	for i, segment := range segments {
		if err := segment.Validate(); err != nil {
			return fmt.Errorf("part %d is invalid: %w", i+1, err)
		}

		if segment.Total != total {
			return fmt.Errorf("part %d declares total %d, expected %d", i+1, segment.Total, total)
		}

		if segment.Index != i+1 {
			return fmt.Errorf("part %d has index %d", i+1, segment.Index)
		}
	}

	if math.Abs(segments[0].Start) > CoverageTolerance {
		return fmt.Errorf("first part starts at %.6f instead of 0", segments[0].Start)
	}

	for i := 0; i < len(segments)-1; i++ {
		currentEnd := segments[i].End
		nextStart := segments[i+1].Start

		if currentEnd-nextStart > CoverageTolerance {
			return fmt.Errorf("parts %d and %d overlap: part %d ends at %.6f, part %d starts at %.6f",
				i+1, i+2, i+1, currentEnd, i+2, nextStart)
		}

		if nextStart-currentEnd > CoverageTolerance {
			return fmt.Errorf("gap between parts %d and %d: part %d ends at %.6f, part %d starts at %.6f",
				i+1, i+2, i+1, currentEnd, i+2, nextStart)
		}
	}

	last := segments[len(segments)-1]
	if last.OpenEnded {
		if math.Abs(last.End-duration) > CoverageTolerance {
			return fmt.Errorf("open-ended last part ends at %.6f, source is %.6f", last.End, duration)
		}
		return nil
	}

	absorbed := duration - last.End
	if absorbed < -CoverageTolerance {
		return fmt.Errorf("last part ends at %.6f, past the end of the source (%.6f)", last.End, duration)
	}
	if absorbed >= p.leftoverThreshold || absorbed >= p.partLength {
		return fmt.Errorf("last part ends at %.6f, leaving %.6f seconds uncovered", last.End, absorbed)
	}

	return nil
}

// ValidateSettings checks the part length and the leftover threshold. A
// threshold above DefaultLeftoverThreshold must be shorter than the part
// length, otherwise a remainder of any size would be absorbed and lost.
func (p *Planner) ValidateSettings() error {
	if math.IsNaN(p.partLength) || math.IsInf(p.partLength, 0) || p.partLength <= 0 {
		return fmt.Errorf("%w: part length must be a positive number of seconds, got %v",
			ErrInvalidArgument, p.partLength)
	}

	if math.IsNaN(p.leftoverThreshold) || math.IsInf(p.leftoverThreshold, 0) || p.leftoverThreshold < 0 {
		return fmt.Errorf("%w: leftover threshold must be a non-negative number of seconds, got %v",
			ErrInvalidArgument, p.leftoverThreshold)
	}

	if p.leftoverThreshold > DefaultLeftoverThreshold && p.leftoverThreshold >= p.partLength {
		return fmt.Errorf("%w: leftover threshold %gs must be shorter than the part length %gs",
			ErrInvalidArgument, p.leftoverThreshold, p.partLength)
	}

	return nil
}

func (p *Planner) validateInputs(duration float64) error {
	if err := p.ValidateSettings(); err != nil {
		return err
	}

	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration < 0 {
		return fmt.Errorf("%w: duration must be a non-negative number of seconds, got %v",
			ErrInvalidArgument, duration)
	}

	return nil
}

// Plan is shorthand for NewPlanner(partLength).SetSuffix(suffix).Plan(...).
func Plan(duration, partLength float64, baseName, suffix, ext string) ([]models.Segment, error) {
	return NewPlanner(partLength).SetSuffix(suffix).Plan(duration, baseName, ext)
}

// ValidatePlan validates segments with the default leftover threshold. The
// part length is taken from the first segment.
func ValidatePlan(segments []models.Segment, duration float64) error {
	partLength := DefaultLeftoverThreshold
	if len(segments) > 0 && segments[0].Length() > 0 {
		partLength = segments[0].Length()
	}
	return NewPlanner(partLength).Validate(segments, duration)
}

// PartName builds the file name of one part.
func PartName(baseName, suffix string, index, total int, ext string) string {
	return fmt.Sprintf("%s_%s%d_of_%d%s", baseName, suffix, index, total, ext)
}
