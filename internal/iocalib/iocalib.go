// Package iocalib loads seasonal NDVI calibration curves from YAML.
package iocalib

import (
	"log/slog"

	"github.com/skippy/farm/internal/iofs"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
	"gopkg.in/yaml.v3"
)

type calibrationFile struct {
	Curves map[string]sdm.Curve `yaml:"curves"`
}

// Load reads curves from path and merges them over the built-in ones.
// An empty path returns the built-in calibration.
func Load(path string) (sdm.Calibration, error) {
	def := sdm.DefaultCalibration()
	if path == "" {
		return def, nil
	}

	data, err := iofs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cal, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded calibration", "path", path, "seasons", len(cal))
	return def.Merge(cal), nil
}

// Parse decodes calibration YAML. The path is used in error messages.
func Parse(path string, data []byte) (sdm.Calibration, error) {
	var f calibrationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, CalibrationReadError(path, err)
	}

	res := make(sdm.Calibration, len(f.Curves))
	for k, v := range f.Curves {
		season, err := records.ParseSeason(k)
		if err != nil {
			return nil, CalibrationSeasonError(path, k, "unknown season")
		}
		if !v.Valid() {
			return nil, CalibrationSeasonError(
				path, k, "scale, coef and max_sdm must be positive",
			)
		}
		if v.Name == "" {
			v.Name = season.String()
		}
		res[season] = v
	}
	return res, nil
}
