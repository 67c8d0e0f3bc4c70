package profile

import (
	"errors"
	"fmt"
)

// Profile describes the target encode parameters for a library run.
type Profile struct {
	VideoBitrateKbps int
	MaxWidth         int
	MaxHeight        int
	GOPFactor        float64
	Codec            string
	Preset           string
	PixelFormat      string
}

// Resolution is a computed output frame size.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// FitResolution computes the output resolution for a source frame,
// preserving aspect ratio. The width is fitted to MaxWidth first; when the
// resulting height exceeds MaxHeight the frame is refitted to MaxHeight
// instead. Fractional results truncate toward zero, so 1920x1080 lands
// exactly on 854x480.
func (p Profile) FitResolution(width, height int) (Resolution, error) {
	if width <= 0 || height <= 0 {
		return Resolution{}, fmt.Errorf("fit resolution: invalid source dimensions %dx%d", width, height)
	}

	fitted := Resolution{
		Width:  p.MaxWidth,
		Height: int(float64(height) * (float64(p.MaxWidth) / float64(width))),
	}
	if fitted.Height > p.MaxHeight {
		fitted = Resolution{
			Width:  int(float64(width) * (float64(p.MaxHeight) / float64(height))),
			Height: p.MaxHeight,
		}
	}

	if fitted.Width <= 0 || fitted.Height <= 0 {
		return Resolution{}, fmt.Errorf("fit resolution: degenerate output for source %dx%d", width, height)
	}
	return fitted, nil
}

// KeyframeInterval derives the GOP size from the source frame rate,
// truncated to an integer. 24 fps yields 12, 29.97 fps yields 14.
func (p Profile) KeyframeInterval(frameRate float64) (int, error) {
	if frameRate <= 0 {
		return 0, errors.New("keyframe interval: frame rate must be positive")
	}
	return int(frameRate * p.GOPFactor), nil
}

// MaxrateKbps returns the rate-control ceiling, twice the target bitrate.
func (p Profile) MaxrateKbps() int {
	return p.VideoBitrateKbps * 2
}

// BufsizeKbps returns the rate-control buffer size, four times the target bitrate.
func (p Profile) BufsizeKbps() int {
	return p.VideoBitrateKbps * 4
}

// QualifiesBitrate reports whether a source is worth converting. Sources
// already at or below the target bitrate are left alone.
func (p Profile) QualifiesBitrate(sourceKbps int) bool {
	return sourceKbps >= p.VideoBitrateKbps
}
