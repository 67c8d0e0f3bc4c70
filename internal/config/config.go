package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"squeeze/internal/profile"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Library contains configuration for the library layout convention.
type Library struct {
	VersionsDir  string   `toml:"versions_dir"`
	ProfileLabel string   `toml:"profile_label"`
	Extensions   []string `toml:"extensions"`
}

// Profile contains the target encode parameters.
type Profile struct {
	VideoBitrateKbps int     `toml:"video_bitrate_kbps"`
	MaxWidth         int     `toml:"max_width"`
	MaxHeight        int     `toml:"max_height"`
	GOPFactor        float64 `toml:"gop_factor"`
	Codec            string  `toml:"codec"`
	Preset           string  `toml:"preset"`
	PixelFormat      string  `toml:"pixel_format"`
}

// Tools contains external binary overrides.
type Tools struct {
	Mediainfo string `toml:"mediainfo"`
	FFmpeg    string `toml:"ffmpeg"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for squeeze.
//
// Configuration sections:
//   - Paths: log directory (also holds the run lock file)
//   - Library: versions folder naming and candidate file extensions
//   - Profile: target bitrate, resolution bounds, GOP factor, codec knobs
//   - Tools: mediainfo/ffmpeg binary overrides
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Library Library `toml:"library"`
	Profile Profile `toml:"profile"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/squeeze/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("squeeze.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories squeeze writes to.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// MediainfoBinary returns the mediainfo executable name.
func (c *Config) MediainfoBinary() string {
	if trimmed := strings.TrimSpace(c.Tools.Mediainfo); trimmed != "" {
		return trimmed
	}
	return "mediainfo"
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	if trimmed := strings.TrimSpace(c.Tools.FFmpeg); trimmed != "" {
		return trimmed
	}
	return "ffmpeg"
}

// EncodeProfile returns the configured encode parameters as a profile.Profile.
func (c *Config) EncodeProfile() profile.Profile {
	return profile.Profile{
		VideoBitrateKbps: c.Profile.VideoBitrateKbps,
		MaxWidth:         c.Profile.MaxWidth,
		MaxHeight:        c.Profile.MaxHeight,
		GOPFactor:        c.Profile.GOPFactor,
		Codec:            c.Profile.Codec,
		Preset:           c.Profile.Preset,
		PixelFormat:      c.Profile.PixelFormat,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
