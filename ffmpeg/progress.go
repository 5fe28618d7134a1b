// Package ffmpeg reads the progress ffmpeg reports on stderr.
package ffmpeg

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"ved/models"
)

// tailSize is how many non-progress lines are kept for error reports.
const tailSize = 8

// ProgressParser parses ffmpeg stderr for progress metrics. It understands
// both the -stats line ("frame=  24 fps=25 ... speed=2x") and the -progress
// key=value format. A ProgressParser is not safe for concurrent use.
type ProgressParser struct {
	pairRegex *regexp.Regexp
	tail      []string
}

// NewProgressParser creates a parser.
func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		// "frame=   24" and "speed=2.00x" both appear with optional padding
		pairRegex: regexp.MustCompile(`([a-z_]+)=\s*([^\s=]+)`),
	}
}

// ParseLine applies one line of ffmpeg output to progress and reports whether
// anything changed.
func (pp *ProgressParser) ParseLine(line string, progress *models.Progress) bool {
	line = strings.TrimSpace(line)
	if line == "" || line == "progress=continue" || line == "progress=end" {
		return false
	}

	updated := false
	for _, match := range pp.pairRegex.FindAllStringSubmatch(line, -1) {
		key, value := match[1], match[2]

		switch key {
		case "frame":
			if frame, err := strconv.ParseInt(value, 10, 64); err == nil {
				progress.Frame = frame
				updated = true
			}
		case "fps":
			if fps, err := strconv.ParseFloat(value, 64); err == nil {
				progress.FPS = fps
				updated = true
			}
		case "size":
			if kb, err := strconv.ParseInt(strings.TrimSuffix(value, "kB"), 10, 64); err == nil {
				progress.Size = strconv.FormatInt(kb, 10) + "kB"
				updated = true
			}
		case "time", "out_time":
			if seconds, ok := timeToSeconds(value); ok {
				progress.CurrentTime = value
				progress.CalculateProgress(seconds)
				updated = true
			}
		case "speed":
			if speed, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
				progress.Speed = speed
				updated = true
			}
		}
	}

	return updated
}

// StreamProgress reads ffmpeg stderr until EOF, updating progress and calling
// callback after every change. Output without progress lines is not an error;
// ffmpeg prints none for very short extractions.
func (pp *ProgressParser) StreamProgress(reader io.Reader, progress *models.Progress, callback models.ProgressCallback) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLinesOrCarriageReturns)

	for scanner.Scan() {
		line := scanner.Text()

		if pp.ParseLine(line, progress) {
			progress.State = models.ProgressStateRunning
			if callback != nil {
				callback(progress)
			}
			continue
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			pp.remember(trimmed)
		}
	}

	if err := scanner.Err(); err != nil {
		// ffmpeg stalls once its stderr pipe is full
		_, _ = io.Copy(io.Discard, reader)
		return errors.Wrap(err, "error reading ffmpeg output")
	}
	return nil
}

// Tail returns the last non-progress lines ffmpeg printed, oldest first.
func (pp *ProgressParser) Tail() string {
	return strings.Join(pp.tail, "\n")
}

func (pp *ProgressParser) remember(line string) {
	pp.tail = append(pp.tail, line)
	if len(pp.tail) > tailSize {
		pp.tail = pp.tail[len(pp.tail)-tailSize:]
	}
}

// timeToSeconds converts ffmpeg's HH:MM:SS.MS to seconds.
func timeToSeconds(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}

	return hours*3600 + minutes*60 + seconds, true
}

// scanLinesOrCarriageReturns splits on \n or \r since ffmpeg redraws its
// stats line in place.
func scanLinesOrCarriageReturns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
