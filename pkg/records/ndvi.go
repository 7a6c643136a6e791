package records

import (
	"time"
)

// NDVISample is a monthly NDVI composite of a paddock.
type NDVISample struct {
	PaddockID string    `json:"paddockId"`
	Date      time.Time `json:"date"`

	// NDVI is the mean vegetation index over the paddock.
	NDVI float64 `json:"ndvi"`

	// TreeCover is the fraction of the paddock under tree canopy
	// according to land-cover classification, 0 to 1.
	TreeCover float64 `json:"treeCover"`

	StdDev       *float64 `json:"stdDev,omitempty"`
	CloudFreePct *float64 `json:"cloudFreePct,omitempty"`
	PixelCount   *int     `json:"pixelCount,omitempty"`
}

// Spread returns standard deviation of NDVI inside the paddock, zero when
// unknown.
func (n NDVISample) Spread() float64 {
	if n.StdDev == nil {
		return 0
	}
	return *n.StdDev
}

// Latest returns the most recent sample of a series.
func Latest(series []NDVISample) (NDVISample, bool) {
	if len(series) == 0 {
		return NDVISample{}, false
	}
	res := series[0]
	for _, v := range series[1:] {
		if v.Date.After(res.Date) {
			res = v
		}
	}
	return res, true
}
