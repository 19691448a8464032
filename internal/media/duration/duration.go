package duration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"speechset/internal/logging"
	"speechset/internal/media/ffprobe"
	"speechset/internal/media/wav"
)

// ErrUnsupportedFormat indicates no decoder is available for a file's format.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// SupportedExtensions lists the recognized audio file extensions, lowercase.
var SupportedExtensions = map[string]struct{}{
	".wav":  {},
	".flac": {},
	".mp3":  {},
	".m4a":  {},
	".ogg":  {},
}

// Supported reports whether path has a supported audio extension,
// case-insensitively.
func Supported(path string) bool {
	_, ok := SupportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Probe computes audio durations from container headers.
type Probe struct {
	ffprobeBinary string
	logger        *slog.Logger
}

// NewProbe constructs a Probe. ffprobeBinary may be empty to use the PATH
// default; logger may be nil.
func NewProbe(ffprobeBinary string, logger *slog.Logger) *Probe {
	return &Probe{
		ffprobeBinary: strings.TrimSpace(ffprobeBinary),
		logger:        logging.NewComponentLogger(logger, "probe"),
	}
}

// DurationMS returns the duration of the audio file at path in milliseconds,
// computed as sample-frame count x 1000 / sample rate. WAV headers are read
// directly; other formats fall back to ffprobe.
func (p *Probe) DurationMS(ctx context.Context, path string) (float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		info, err := wav.ReadInfo(path)
		if err != nil {
			return 0, err
		}
		return info.DurationMS(), nil
	}
	return p.ffprobeDurationMS(ctx, path)
}

func (p *Probe) ffprobeDurationMS(ctx context.Context, path string) (float64, error) {
	result, err := ffprobe.Inspect(ctx, p.ffprobeBinary, path)
	if err != nil {
		if errors.Is(err, ffprobe.ErrBinaryNotFound) {
			return 0, fmt.Errorf("%w: cannot read %s without ffprobe; install ffmpeg or convert to WAV", ErrUnsupportedFormat, filepath.Ext(path))
		}
		return 0, err
	}

	stream, ok := result.FirstAudioStream()
	if !ok {
		return 0, fmt.Errorf("%w: %s has no audio stream", ErrUnsupportedFormat, path)
	}

	if frames, rate := stream.FrameCount(), stream.SampleRateHz(); frames > 0 && rate > 0 {
		return float64(frames) * 1000.0 / float64(rate), nil
	}

	// Some containers only report a duration in seconds; fall back to it.
	seconds := stream.DurationSeconds()
	if seconds <= 0 || math.IsNaN(seconds) {
		seconds = result.DurationSeconds()
	}
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0, fmt.Errorf("%w: %s reports no duration", ErrUnsupportedFormat, path)
	}
	p.logger.Debug("duration from container metadata",
		logging.Args(logging.String("path", path), logging.Float64("seconds", seconds))...)
	return seconds * 1000.0, nil
}
