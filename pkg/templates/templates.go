// Package templates provides embedded YAML templates written to the config
// directory on first run.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// CalibrationYAML contains an example of seasonal NDVI calibration curves.
// The values repeat the built-in curves.
//
//go:embed calibration.yaml
var CalibrationYAML string
