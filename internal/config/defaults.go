package config

import "scenedup/internal/segment"

const (
	defaultDataDir     = "~/.local/share/scenedup"
	defaultLogDir      = "~/.local/share/scenedup/logs"
	defaultFrameRate   = 30
	defaultSearchLimit = 10
	defaultTopLimit    = 10
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Analysis: Analysis{
			FrameRate:            defaultFrameRate,
			SceneChangeThreshold: segment.DefaultChangeThreshold,
			SearchLimit:          defaultSearchLimit,
			TopLimit:             defaultTopLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
