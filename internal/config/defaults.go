package config

const (
	defaultLogDir           = "~/.local/share/squeeze/logs"
	defaultVersionsDir      = "Custom Versions"
	defaultProfileLabel     = "1Mbps"
	defaultVideoBitrateKbps = 1000
	defaultMaxWidth         = 854
	defaultMaxHeight        = 480
	defaultGOPFactor        = 0.5
	defaultCodec            = "h264_nvenc"
	defaultPreset           = "slow"
	defaultPixelFormat      = "yuv420p"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

func defaultExtensions() []string {
	return []string{".mp4", ".mkv", ".webm", ".avi"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Library: Library{
			VersionsDir:  defaultVersionsDir,
			ProfileLabel: defaultProfileLabel,
			Extensions:   defaultExtensions(),
		},
		Profile: Profile{
			VideoBitrateKbps: defaultVideoBitrateKbps,
			MaxWidth:         defaultMaxWidth,
			MaxHeight:        defaultMaxHeight,
			GOPFactor:        defaultGOPFactor,
			Codec:            defaultCodec,
			Preset:           defaultPreset,
			PixelFormat:      defaultPixelFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
