// Package timeutil converts between seconds and the HOUR:MINUTE:SECOND
// timestamps used on the command line and in ffmpeg arguments.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrTimestampFormat is returned when a timestamp is not HOUR:MINUTE:SECOND.
	ErrTimestampFormat = errors.New("time stamp requires the following format: HOUR:MINUTE:SECOND")

	// ErrTimestampType is returned when a timestamp field has the wrong numeric type.
	ErrTimestampType = errors.New("HOUR/MINUTE must be integer, while SECOND can be integer or float")

	// ErrTimestampRange is returned when MINUTE or SECOND exceeds 60 or a field is negative.
	ErrTimestampRange = errors.New("MINUTE/SECOND must be less than or equal to 60 and no field may be negative")
)

// FormatSeconds converts seconds to HH:MM:SS.MS format for FFmpeg.
//
// Example:
//
//	FormatSeconds(0)      // "00:00:00.00"
//	FormatSeconds(90)     // "00:01:30.00"
//	FormatSeconds(3661)   // "01:01:01.00"
//	FormatSeconds(30.53)  // "00:00:30.53"
func FormatSeconds(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}

// Timestamp is a validated HOUR:MINUTE:SECOND value. Raw keeps the text the
// user typed so derived names stay recognisable.
type Timestamp struct {
	Raw     string
	Seconds float64
}

// Compact returns the raw timestamp with its colons removed,
// e.g. "0:01:30" becomes "00130".
func (ts Timestamp) Compact() string {
	return CompactTimestamp(ts.Raw)
}

// String returns the raw timestamp.
func (ts Timestamp) String() string {
	return ts.Raw
}

// ParseTimestamp validates value as HOUR:MINUTE:SECOND and returns its length
// in seconds. HOUR and MINUTE must be integers, SECOND may be fractional, and
// MINUTE and SECOND may not exceed 60.
//
// Example:
//
//	ts, _ := ParseTimestamp("1:02:03.5")
//	ts.Seconds // 3723.5
func ParseTimestamp(value string) (Timestamp, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return Timestamp{}, fmt.Errorf("%q is not an acceptable time stamp format: %w", value, ErrTimestampFormat)
	}

	hour, errHour := strconv.Atoi(parts[0])
	minute, errMinute := strconv.Atoi(parts[1])
	second, errSecond := strconv.ParseFloat(parts[2], 64)
	if errHour != nil || errMinute != nil || errSecond != nil || math.IsNaN(second) || math.IsInf(second, 0) {
		return Timestamp{}, fmt.Errorf("%q has fields of the wrong numeric type: %w", value, ErrTimestampType)
	}

	if hour < 0 || minute < 0 || second < 0 || minute > 60 || second > 60 {
		return Timestamp{}, fmt.Errorf("%q is not within the correct range: %w", value, ErrTimestampRange)
	}

	return Timestamp{
		Raw:     strings.TrimSpace(value),
		Seconds: float64(hour)*3600 + float64(minute)*60 + second,
	}, nil
}

// CompactTimestamp strips the colons from a timestamp string.
func CompactTimestamp(value string) string {
	return strings.ReplaceAll(value, ":", "")
}
