// Package config loads, validates, and normalizes scenedup's TOML
// configuration. Defaults come from Default; Load layers a user config file
// on top and expands all path fields.
package config
