package planner

// MediaInfo is the part of a probe result the planner needs.
//
// It keeps the planner independent of ffprobe so plans can be computed and
// tested from any duration source.
type MediaInfo interface {
	// GetDuration returns the media duration in seconds, or an error when
	// the duration is unavailable.
	GetDuration() (float64, error)
}

// Duration is a MediaInfo backed by a known number of seconds.
type Duration float64

// GetDuration implements MediaInfo.
func (d Duration) GetDuration() (float64, error) {
	return float64(d), nil
}
