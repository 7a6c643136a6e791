// Package sdm estimates standing dry matter (kg DM/ha) of a paddock from
// NDVI composites with seasonal calibration curves. The tree canopy share
// of a paddock is removed from the signal before a curve is applied.
package sdm

import (
	"math"
	"time"

	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/records"
)

// Uncertainty of a single SDM estimate, kg DM/ha.
const Uncertainty = 260.0

// Estimator converts NDVI to standing dry matter. It keeps no state
// between calls and is safe for concurrent use.
type Estimator struct {
	curves      Calibration
	treeNDVI    float64
	utilization float64
}

// New creates an Estimator. A nil calibration means DefaultCalibration.
func New(cfg config.SDMConfig, cal Calibration) *Estimator {
	if cal == nil {
		cal = DefaultCalibration()
	}
	return &Estimator{
		curves:      cal,
		treeNDVI:    cfg.TreeNDVI,
		utilization: cfg.Utilization,
	}
}

// Estimate returns standing dry matter of the most recent sample of the
// series using the curve of the season.
//
// Every sample is validated: NDVI outside [-1, 1] and tree cover outside
// [0, 1) return InvalidInputError. A fully wooded paddock (tree cover 1)
// has no pasture signal and is rejected the same way. An empty series
// returns DataGapError.
func (e *Estimator) Estimate(
	ndvi []records.NDVISample,
	season records.Season,
) (float64, error) {
	if season == records.UnknownSeason {
		return 0, records.InvalidInputError("season is not set")
	}
	for _, v := range ndvi {
		if err := validate(v); err != nil {
			return 0, err
		}
	}
	latest, ok := records.Latest(ndvi)
	if !ok {
		return 0, records.DataGapError("NDVI series", nil)
	}
	return e.curves.Curve(season).SDM(e.PastureNDVI(latest)), nil
}

// PastureNDVI removes tree canopy from the paddock NDVI by linear
// unmixing against the tree endmember. The sample must be valid.
func (e *Estimator) PastureNDVI(s records.NDVISample) float64 {
	f := s.TreeCover
	if f <= 0 {
		return s.NDVI
	}
	res := (s.NDVI - f*e.treeNDVI) / (1 - f)
	return max(-1, min(1, res))
}

// GrowthRate returns change of standing dry matter per day between two
// composites. Seasons are derived from composite dates. Negative NDVI is
// treated as bare ground; negative results mean biomass loss.
func (e *Estimator) GrowthRate(
	previous, current records.NDVISample,
	h records.Hemisphere,
) (float64, error) {
	for _, v := range []records.NDVISample{previous, current} {
		if err := validate(v); err != nil {
			return 0, err
		}
	}
	days := int(math.Round(
		records.Day(current.Date).Sub(records.Day(previous.Date)).Hours() / 24,
	))
	if days <= 0 {
		return 0, records.InvalidInputError(
			"composite dates are not increasing: %s, %s",
			previous.Date.Format(time.DateOnly),
			current.Date.Format(time.DateOnly),
		)
	}
	sdmPrev := e.curves.Curve(records.SeasonOf(previous.Date, h)).
		SDM(max(0, e.PastureNDVI(previous)))
	sdmCur := e.curves.Curve(records.SeasonOf(current.Date, h)).
		SDM(max(0, e.PastureNDVI(current)))
	return (sdmCur - sdmPrev) / float64(days), nil
}

func validate(s records.NDVISample) error {
	if math.IsNaN(s.NDVI) || s.NDVI < -1 || s.NDVI > 1 {
		return records.InvalidInputError(
			"NDVI %v of paddock '%s' is outside [-1, 1]", s.NDVI, s.PaddockID,
		)
	}
	if math.IsNaN(s.TreeCover) || s.TreeCover < 0 || s.TreeCover > 1 {
		return records.InvalidInputError(
			"tree cover %v of paddock '%s' is outside [0, 1]",
			s.TreeCover, s.PaddockID,
		)
	}
	if s.TreeCover == 1 {
		return records.InvalidInputError(
			"paddock '%s' is fully wooded, no pasture signal", s.PaddockID,
		)
	}
	return nil
}
