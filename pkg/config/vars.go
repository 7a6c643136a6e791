package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "farm"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/farm by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/farm by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/farm/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/farm/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// StorePath returns the path to the local record store.
// Returns ~/.cache/farm/records.db by default.
func StorePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "records.db")
}

// CalibrationFilePath resolves the SDM calibration file. Relative paths
// are resolved against the config directory. Returns an empty string if
// no calibration file is configured.
func (c *Config) CalibrationFilePath() string {
	p := c.SDM.CalibrationFile
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ConfigDir(c.HomeDir), p)
}
