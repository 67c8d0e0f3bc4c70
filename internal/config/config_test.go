package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"squeeze/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "squeeze", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Library.VersionsDir != "Custom Versions" {
		t.Fatalf("unexpected versions dir: %q", cfg.Library.VersionsDir)
	}
	if cfg.Library.ProfileLabel != "1Mbps" {
		t.Fatalf("unexpected profile label: %q", cfg.Library.ProfileLabel)
	}
	if cfg.Profile.VideoBitrateKbps != 1000 {
		t.Fatalf("unexpected bitrate: %d", cfg.Profile.VideoBitrateKbps)
	}
	if cfg.Profile.MaxWidth != 854 || cfg.Profile.MaxHeight != 480 {
		t.Fatalf("unexpected resolution bounds: %dx%d", cfg.Profile.MaxWidth, cfg.Profile.MaxHeight)
	}
	if cfg.Profile.GOPFactor != 0.5 {
		t.Fatalf("unexpected gop factor: %v", cfg.Profile.GOPFactor)
	}
	if cfg.MediainfoBinary() != "mediainfo" {
		t.Fatalf("unexpected mediainfo binary: %q", cfg.MediainfoBinary())
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpegBinary())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "squeeze.toml")
	content := `
[library]
versions_dir = "Alternates"
profile_label = "720p"
extensions = ["MKV", ".mp4", "", ".mp4"]

[profile]
video_bitrate_kbps = 2500
max_width = 1280
max_height = 720

[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q (exists=%v)", path, resolved, exists)
	}

	if cfg.Library.VersionsDir != "Alternates" || cfg.Library.ProfileLabel != "720p" {
		t.Fatalf("unexpected library overrides: %q/%q", cfg.Library.VersionsDir, cfg.Library.ProfileLabel)
	}
	wantExts := []string{".mkv", ".mp4"}
	if len(cfg.Library.Extensions) != len(wantExts) {
		t.Fatalf("expected extensions %v, got %v", wantExts, cfg.Library.Extensions)
	}
	for i, ext := range wantExts {
		if cfg.Library.Extensions[i] != ext {
			t.Fatalf("expected extensions %v, got %v", wantExts, cfg.Library.Extensions)
		}
	}
	if cfg.Profile.VideoBitrateKbps != 2500 {
		t.Fatalf("unexpected bitrate override: %d", cfg.Profile.VideoBitrateKbps)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpegBinary())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	// Defaults fill what the file leaves unset.
	if cfg.Profile.Codec != "h264_nvenc" {
		t.Fatalf("expected default codec, got %q", cfg.Profile.Codec)
	}
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "squeeze.toml")
	content := `
[profile]
video_bitrate_kbps = -5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative bitrate")
	}
}

func TestLoadRejectsNestedVersionsDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "squeeze.toml")
	content := `
[library]
versions_dir = "Custom/Versions"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for nested versions dir")
	}
}

func TestCreateSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected sample config content")
	}
}
