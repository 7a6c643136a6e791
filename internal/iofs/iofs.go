// Package iofs prepares the file system layout of farm: config, cache and
// log directories, and config templates copied on first run.
package iofs

import (
	"os"
	"path/filepath"

	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/templates"
)

// CalibrationFile is the name of the calibration template in the config
// directory.
const CalibrationFile = "calibration.yaml"

// EnsureDirs creates config, cache and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the config.yaml template unless the file
// already exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), templates.ConfigYAML)
}

// EnsureCalibrationFile writes the calibration template next to
// config.yaml unless the file already exists. The template is not used
// until sdm.calibration_file points to it.
func EnsureCalibrationFile(homeDir string) error {
	path := filepath.Join(config.ConfigDir(homeDir), CalibrationFile)
	return ensureFile(path, templates.CalibrationYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// ReadFile reads a whole file, wrapping failures into ReadFileError.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}
