package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.FrameRate <= 0 {
		return fmt.Errorf("analysis.frame_rate must be positive, got %d", c.Analysis.FrameRate)
	}
	if c.Analysis.SceneChangeThreshold <= 0 {
		return fmt.Errorf("analysis.scene_change_threshold must be positive, got %g", c.Analysis.SceneChangeThreshold)
	}
	if c.Analysis.SearchLimit <= 0 {
		return fmt.Errorf("analysis.search_limit must be positive, got %d", c.Analysis.SearchLimit)
	}
	if c.Analysis.TopLimit <= 0 {
		return fmt.Errorf("analysis.top_limit must be positive, got %d", c.Analysis.TopLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
