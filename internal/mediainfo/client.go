package mediainfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// ErrNoVideoTrack indicates the probed file contains no video track.
var ErrNoVideoTrack = errors.New("mediainfo: no video track")

// VideoInfo carries the scalar metadata of the first video track.
type VideoInfo struct {
	FrameRate   float64
	BitRateKbps int
	Width       int
	Height      int
}

// Client defines probe behaviour.
type Client interface {
	Inspect(ctx context.Context, path string) (VideoInfo, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the mediainfo command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "mediainfo"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

type report struct {
	Media struct {
		Ref    string  `json:"@ref"`
		Tracks []track `json:"track"`
	} `json:"media"`
}

type track struct {
	Type      string `json:"@type"`
	FrameRate string `json:"FrameRate"`
	BitRate   string `json:"BitRate"`
	Width     string `json:"Width"`
	Height    string `json:"Height"`
}

// Inspect executes mediainfo against the provided path and decodes the
// first video track from its JSON report. The bitrate is converted from
// bits per second to kbps.
func (c *CLI) Inspect(ctx context.Context, path string) (VideoInfo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return VideoInfo{}, errors.New("mediainfo inspect: empty path")
	}

	cmd := commandContext(ctx, c.binary, "--Output=JSON", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo inspect: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var parsed report
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo parse: %w", err)
	}

	for _, tr := range parsed.Media.Tracks {
		if !strings.EqualFold(tr.Type, "Video") {
			continue
		}
		return decodeVideoTrack(tr)
	}
	return VideoInfo{}, ErrNoVideoTrack
}

// decodeVideoTrack converts the string fields of a video track. Absent
// fields decode to zero; present but malformed values are an error so a
// garbled report surfaces as a failed probe instead of a zeroed one.
func decodeVideoTrack(tr track) (VideoInfo, error) {
	frameRate, err := parseFloat(tr.FrameRate)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo parse: frame rate: %w", err)
	}
	bitRate, err := parseFloat(tr.BitRate)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo parse: bit rate: %w", err)
	}
	width, err := parseInt(tr.Width)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo parse: width: %w", err)
	}
	height, err := parseInt(tr.Height)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("mediainfo parse: height: %w", err)
	}
	return VideoInfo{
		FrameRate:   frameRate,
		BitRateKbps: int(bitRate / 1000),
		Width:       width,
		Height:      height,
	}, nil
}

func parseFloat(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", trimmed)
	}
	return parsed, nil
}

func parseInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", trimmed)
	}
	return parsed, nil
}

var _ Client = (*CLI)(nil)
