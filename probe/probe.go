// Package probe extracts media metadata by running ffprobe.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single ffprobe invocation.
const DefaultTimeout = 30 * time.Second

// ErrNoDuration is returned when neither the container nor any video stream
// reports a duration.
var ErrNoDuration = errors.New("duration not available in probe output")

// Stream is one audio, video or subtitle stream.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	CodecLongName string `json:"codec_long_name"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	SampleRate    string `json:"sample_rate,omitempty"`
	Channels      int    `json:"channels,omitempty"`
	Duration      string `json:"duration,omitempty"`
	RFrameRate    string `json:"r_frame_rate,omitempty"`
	AvgFrameRate  string `json:"avg_frame_rate,omitempty"`
}

// Format is the container information.
type Format struct {
	Filename       string `json:"filename"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

// Result holds the metadata ffprobe reported for one file.
type Result struct {
	Path    string   `json:"-"`
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// GetDuration returns the container duration in seconds, falling back to the
// first video stream that reports one.
func (r *Result) GetDuration() (float64, error) {
	if d, ok := parseSeconds(r.Format.Duration); ok {
		return d, nil
	}

	for _, stream := range r.GetVideoStreams() {
		if d, ok := parseSeconds(stream.Duration); ok {
			return d, nil
		}
	}

	return 0, errors.Wrapf(ErrNoDuration, "%s", r.Path)
}

// GetFrameRate returns the frame rate of the first video stream. The rate is
// read from r_frame_rate and falls back to avg_frame_rate.
func (r *Result) GetFrameRate() (float64, error) {
	videos := r.GetVideoStreams()
	if len(videos) == 0 {
		return 0, errors.Errorf("%s has no video stream", r.Path)
	}

	for _, raw := range []string{videos[0].RFrameRate, videos[0].AvgFrameRate} {
		if fps, ok := parseRational(raw); ok {
			return fps, nil
		}
	}

	return 0, errors.Errorf("%s reports no usable frame rate", r.Path)
}

// GetVideoStreams returns all video streams.
func (r *Result) GetVideoStreams() []Stream {
	return r.streamsOfType("video")
}

// GetAudioStreams returns all audio streams.
func (r *Result) GetAudioStreams() []Stream {
	return r.streamsOfType("audio")
}

func (r *Result) streamsOfType(codecType string) []Stream {
	var streams []Stream
	for _, stream := range r.Streams {
		if stream.CodecType == codecType {
			streams = append(streams, stream)
		}
	}
	return streams
}

// Prober runs ffprobe. The zero value is not usable, use NewProber.
type Prober struct {
	logger  hclog.Logger
	timeout time.Duration
	binary  string
}

// NewProber creates a Prober. A zero timeout means DefaultTimeout.
func NewProber(logger hclog.Logger, timeout time.Duration) *Prober {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		logger:  logger.Named("probe"),
		timeout: timeout,
		binary:  "ffprobe",
	}
}

// Probe analyzes sourcePath with ffprobe.
//
// Example:
//
//	result, err := prober.Probe(ctx, "/videos/talk.mp4")
//	if err != nil {
//	    return err
//	}
//	duration, _ := result.GetDuration()
func (p *Prober) Probe(ctx context.Context, sourcePath string) (*Result, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return nil, errors.New("source path cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		sourcePath,
	}

	p.logger.Debug("running ffprobe", "path", sourcePath)

	start := time.Now()
	output, err := exec.CommandContext(ctx, p.binary, args...).Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), "ffprobe %s", sourcePath)
		}
		return nil, errors.Wrapf(err, "ffprobe failed for %s", sourcePath)
	}

	result, err := parseProbeOutput(output)
	if err != nil {
		return nil, errors.Wrapf(err, "probe %s", sourcePath)
	}
	result.Path = sourcePath

	p.logger.Debug("probe complete", "result", result.String(), "elapsed", time.Since(start))
	return result, nil
}

func parseProbeOutput(output []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse ffprobe JSON output")
	}
	return &result, nil
}

func parseSeconds(raw string) (float64, bool) {
	if raw == "" || raw == "N/A" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// parseRational parses ffprobe rates such as "30000/1001" or "25".
func parseRational(raw string) (float64, bool) {
	num, den, found := strings.Cut(raw, "/")
	if !found {
		return parseSeconds(raw)
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}

	rate := n / d
	if rate <= 0 {
		return 0, false
	}
	return rate, true
}

// String returns a short description used in debug logs.
func (r *Result) String() string {
	duration, _ := r.GetDuration()
	return fmt.Sprintf("%s (%s, %.2fs, %d streams)", r.Path, r.Format.FormatName, duration, len(r.Streams))
}
