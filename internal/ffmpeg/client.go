package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Job describes a single encode: the source, the destination, and every
// computed parameter the argument template needs.
type Job struct {
	InputPath        string
	OutputPath       string
	Title            string
	Width            int
	Height           int
	KeyframeInterval int
	BitrateKbps      int
	MaxrateKbps      int
	BufsizeKbps      int
	Codec            string
	Preset           string
	PixelFormat      string
}

// Args renders the fixed ffmpeg argument template for the job. Audio and
// data streams are dropped from the output; only the video is re-encoded.
func (j Job) Args() []string {
	return []string{
		"-i", j.InputPath,
		"-map", "0",
		"-map", "-0:a",
		"-map", "-0:d?",
		"-c:v", j.Codec,
		"-bf", "2",
		"-g", strconv.Itoa(j.KeyframeInterval),
		"-coder", "1",
		"-movflags", "+faststart",
		"-b:v", fmt.Sprintf("%dk", j.BitrateKbps),
		"-maxrate", fmt.Sprintf("%dk", j.MaxrateKbps),
		"-bufsize", fmt.Sprintf("%dk", j.BufsizeKbps),
		"-pix_fmt", j.PixelFormat,
		"-preset", j.Preset,
		"-metadata", "title=" + j.Title,
		"-vf", fmt.Sprintf("scale=%d:%d", j.Width, j.Height),
		j.OutputPath,
	}
}

// Client defines transcode behaviour.
type Client interface {
	Transcode(ctx context.Context, job Job, onLine func(string)) error
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

// CLI wraps the ffmpeg command-line transcoder.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Transcode launches ffmpeg and blocks until it exits. Output lines are
// streamed to onLine when provided. A non-zero exit is returned as an
// error carrying the last output line ffmpeg produced.
func (c *CLI) Transcode(ctx context.Context, job Job, onLine func(string)) error {
	if job.InputPath == "" {
		return errors.New("input path required")
	}
	if job.OutputPath == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, job.Args()...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var lastLine string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lastLine = line
		if onLine != nil {
			onLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ffmpeg output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if lastLine != "" {
			return fmt.Errorf("ffmpeg encode failed: %w: %s", err, lastLine)
		}
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
