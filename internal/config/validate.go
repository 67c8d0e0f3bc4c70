package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateProfile(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if strings.ContainsAny(c.Library.VersionsDir, `/\`) {
		return fmt.Errorf("library.versions_dir must be a bare folder name, got %q", c.Library.VersionsDir)
	}
	if strings.ContainsAny(c.Library.ProfileLabel, `/\`) {
		return fmt.Errorf("library.profile_label must be a bare folder name, got %q", c.Library.ProfileLabel)
	}
	return nil
}

func (c *Config) validateProfile() error {
	if c.Profile.VideoBitrateKbps <= 0 {
		return errors.New("profile.video_bitrate_kbps must be positive")
	}
	if c.Profile.MaxWidth <= 0 || c.Profile.MaxHeight <= 0 {
		return fmt.Errorf("profile resolution bounds must be positive, got %dx%d", c.Profile.MaxWidth, c.Profile.MaxHeight)
	}
	if c.Profile.GOPFactor <= 0 || c.Profile.GOPFactor > 1 {
		return errors.New("profile.gop_factor must be in (0, 1]")
	}
	if strings.TrimSpace(c.Profile.Codec) == "" {
		return errors.New("profile.codec must be set")
	}
	if strings.TrimSpace(c.Profile.Preset) == "" {
		return errors.New("profile.preset must be set")
	}
	if strings.TrimSpace(c.Profile.PixelFormat) == "" {
		return errors.New("profile.pixel_format must be set")
	}
	return nil
}
