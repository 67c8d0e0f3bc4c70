package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"testing"
)

func testJob() Job {
	return Job{
		InputPath:        "/library/Movie (2019)/movie.mkv",
		OutputPath:       "/library/Movie (2019)/Custom Versions/1Mbps/movie.mkv",
		Title:            "movie",
		Width:            854,
		Height:           480,
		KeyframeInterval: 12,
		BitrateKbps:      1000,
		MaxrateKbps:      2000,
		BufsizeKbps:      4000,
		Codec:            "h264_nvenc",
		Preset:           "slow",
		PixelFormat:      "yuv420p",
	}
}

func TestJobArgsTemplate(t *testing.T) {
	want := []string{
		"-i", "/library/Movie (2019)/movie.mkv",
		"-map", "0",
		"-map", "-0:a",
		"-map", "-0:d?",
		"-c:v", "h264_nvenc",
		"-bf", "2",
		"-g", "12",
		"-coder", "1",
		"-movflags", "+faststart",
		"-b:v", "1000k",
		"-maxrate", "2000k",
		"-bufsize", "4000k",
		"-pix_fmt", "yuv420p",
		"-preset", "slow",
		"-metadata", "title=movie",
		"-vf", "scale=854:480",
		"/library/Movie (2019)/Custom Versions/1Mbps/movie.mkv",
	}
	got := testJob().Args()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("argument template mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/usr/local/bin/ffmpeg"))
	if cli.binary != "/usr/local/bin/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestTranscodeRequiresPaths(t *testing.T) {
	cli := NewCLI()
	job := testJob()
	job.InputPath = ""
	if err := cli.Transcode(context.Background(), job, nil); err == nil {
		t.Fatal("expected error when input path is empty")
	}
	job = testJob()
	job.OutputPath = ""
	if err := cli.Transcode(context.Background(), job, nil); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestTranscodeStreamsOutputLines(t *testing.T) {
	var capturedArgs []string
	setHelperCommand(t, "success", &capturedArgs)

	cli := NewCLI()
	var lines []string
	if err := cli.Transcode(context.Background(), testJob(), func(line string) {
		lines = append(lines, line)
	}); err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}
	if !reflect.DeepEqual(capturedArgs, testJob().Args()) {
		t.Fatalf("expected command to receive the job argument template, got %v", capturedArgs)
	}
}

func TestTranscodeFailureAbortsWithLastLine(t *testing.T) {
	setHelperCommand(t, "failure", nil)

	cli := NewCLI()
	err := cli.Transcode(context.Background(), testJob(), nil)
	if err == nil {
		t.Fatal("expected error when ffmpeg exits non-zero")
	}
}

func setHelperCommand(t *testing.T, mode string, capture *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if capture != nil {
			*capture = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		fmt.Println("frame=  100 fps= 48 q=22.0 size=    1024KiB time=00:00:04.16 bitrate=2014.1kbits/s")
		fmt.Println("frame=  200 fps= 50 q=21.0 Lsize=    2048KiB time=00:00:08.33 bitrate=2013.8kbits/s")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "Unknown encoder 'h264_nvenc'")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
