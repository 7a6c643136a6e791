package sdm

import (
	"math"
	"time"

	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/weather"
)

// NDVI derived feed on offer overestimates grazed paddocks. The
// correction decays exponentially with grazing pressure and recovers
// toward its base while a paddock rests.
const (
	GrazingBaseCorrection = 0.85
	GrazingDecayRate      = 0.004
	GrazingMinCorrection  = 0.25
	RestRecoveryRate      = 0.1
)

// Quality flags of a feed estimate.
const (
	FlagNegativeNDVI  = "negative_ndvi"
	FlagNearBare      = "near_bare"
	FlagHighVariance  = "high_variance"
	FlagHighTreeCover = "high_tree_cover"
	FlagLowCloudFree  = "low_cloud_free"
)

// Grazing describes recent use of a paddock.
type Grazing struct {
	// PressureKgHaDay is dry matter eaten per hectare per day.
	PressureKgHaDay float64
	// RestDays is the number of days since animals left the paddock.
	RestDays int
	// LastPressureKgHaDay is the pressure before the rest started.
	LastPressureKgHaDay float64
}

// GrazingCorrection returns the factor applied to NDVI derived feed, from
// GrazingMinCorrection to GrazingBaseCorrection. A rested paddock starts
// from the correction of its last pressure and recovers toward the base.
func GrazingCorrection(g Grazing) float64 {
	if g.PressureKgHaDay <= 0 && g.RestDays > 0 {
		res := pressureCorrection(g.LastPressureKgHaDay)
		recovery := 1 - math.Exp(-RestRecoveryRate*float64(g.RestDays))
		res += (GrazingBaseCorrection - res) * recovery
		return max(res, GrazingMinCorrection)
	}
	return max(pressureCorrection(g.PressureKgHaDay), GrazingMinCorrection)
}

func pressureCorrection(pressure float64) float64 {
	return GrazingBaseCorrection * math.Exp(-GrazingDecayRate*max(0, pressure))
}

// FeedOnOffer is the grazeable dry matter of a paddock.
type FeedOnOffer struct {
	PaddockID   string
	Date        time.Time
	Season      records.Season
	NDVI        float64
	PastureNDVI float64
	SDMKgHa     float64
	// RawKgHa is SDM times utilization, before grazing correction.
	RawKgHa    float64
	Correction float64
	// MossCorrection is the share of the paddock that is not moss, 1
	// until ApplyMoss is called.
	MossCorrection float64
	FOOKgHa        float64
	Flags          []string
}

// ApplyMoss removes the moss share of the paddock from feed on offer.
func (f *FeedOnOffer) ApplyMoss(m Moss) {
	f.MossCorrection = m.Correction
	f.FOOKgHa = f.RawKgHa * f.Correction * f.MossCorrection
}

// Valid reports whether the estimate has no quality flags.
func (f FeedOnOffer) Valid() bool {
	return len(f.Flags) == 0
}

// FeedOnOffer estimates grazeable dry matter of the most recent sample of
// the series. Validation is the same as in Estimate. Negative pasture NDVI
// is treated as bare ground.
func (e *Estimator) FeedOnOffer(
	ndvi []records.NDVISample,
	season records.Season,
	h records.Hemisphere,
	g Grazing,
) (FeedOnOffer, error) {
	if _, err := e.Estimate(ndvi, season); err != nil {
		return FeedOnOffer{}, err
	}
	s, _ := records.Latest(ndvi)
	pasture := e.PastureNDVI(s)

	res := FeedOnOffer{
		PaddockID:   s.PaddockID,
		Date:        s.Date,
		Season:      season,
		NDVI:        s.NDVI,
		PastureNDVI: pasture,
		Flags:       QualityFlags(s, h),
	}
	res.SDMKgHa = e.curves.Curve(season).SDM(max(0, pasture))
	res.RawKgHa = res.SDMKgHa * e.utilization
	res.Correction = GrazingCorrection(g)
	res.MossCorrection = 1
	res.FOOKgHa = res.RawKgHa * res.Correction
	return res, nil
}

// QualityFlags lists conditions that make an NDVI composite unreliable.
// The accepted cloud-free share depends on the composite window of the
// sample date.
func QualityFlags(s records.NDVISample, h records.Hemisphere) []string {
	var res []string
	if s.NDVI < 0 {
		res = append(res, FlagNegativeNDVI)
	}
	if s.NDVI > 0 && s.NDVI < 0.1 {
		res = append(res, FlagNearBare)
	}
	if s.Spread() > 0.3 {
		res = append(res, FlagHighVariance)
	}
	if s.TreeCover > 0.2 {
		res = append(res, FlagHighTreeCover)
	}
	minCloudFree := weather.MinCloudFreePct(weather.CompositeWindow(s.Date, h))
	if s.CloudFreePct != nil && *s.CloudFreePct < minCloudFree {
		res = append(res, FlagLowCloudFree)
	}
	return res
}
