package sdm

import (
	"math"
	"time"

	"github.com/skippy/farm/pkg/records"
)

// Moss and other evergreen cover stays green in the dormant season and
// adds to NDVI without adding grazeable feed. Poor drainage favors it.
const (
	// MossMaxFraction caps the estimated moss share of a paddock.
	MossMaxFraction = 0.40
	// MossBase is the moss share of a paddock with the worst drainage.
	MossBase = 0.35
	// MossEvergreenBonus is added to the share of a paddock without any
	// seasonal NDVI change.
	MossEvergreenBonus = 0.15
	// MossSeasonalLimit is the seasonality index from which no bonus is
	// added.
	MossSeasonalLimit = 0.3
	// MossUnknownBonus is added when seasonality cannot be computed.
	MossUnknownBonus = 0.05
)

// Quality of a moss estimate.
const (
	MossQualityGood         = "good"
	MossQualityLimited      = "limited"
	MossQualityInsufficient = "insufficient"
)

var drainageScores = map[records.Drainage]float64{
	records.VeryPoorlyDrained:          0.0,
	records.PoorlyDrained:              0.1,
	records.SomewhatPoorlyDrained:      0.3,
	records.ModeratelyWellDrained:      0.5,
	records.WellDrained:                0.8,
	records.SomewhatExcessivelyDrained: 0.9,
	records.ExcessivelyDrained:         1.0,
}

// Moss is the estimated moss cover of a paddock.
type Moss struct {
	// Seasonality is 0 for evergreen and 1 for fully dormant cover, nil
	// when the NDVI history is too short.
	Seasonality *float64
	// DrainageScore is 0 for very poorly and 1 for excessively drained
	// soils.
	DrainageScore float64
	Fraction      float64
	// Correction multiplies feed on offer.
	Correction float64
	Quality    string
}

// DrainageScore maps a drainage class to [0, 1]. Unknown classes score
// 0.5.
func DrainageScore(d records.Drainage) float64 {
	if res, ok := drainageScores[d]; ok {
		return res
	}
	return 0.5
}

// Seasonality compares mean NDVI of the peak growing months (May to July
// in the northern hemisphere) with the dormant months (December to
// February). It needs two usable samples of each. The quality depends on
// the number of years in the series.
func Seasonality(
	series []records.NDVISample,
	h records.Hemisphere,
) (float64, string, bool) {
	var peak, dormant []float64
	years := make(map[int]struct{})
	for _, v := range series {
		if v.NDVI < 0 || math.IsNaN(v.NDVI) {
			continue
		}
		years[v.Date.Year()] = struct{}{}
		m := v.Date.Month()
		if h == records.South {
			m = (m+5)%12 + 1
		}
		switch m {
		case time.May, time.June, time.July:
			peak = append(peak, v.NDVI)
		case time.December, time.January, time.February:
			dormant = append(dormant, v.NDVI)
		}
	}
	if len(peak) < 2 || len(dormant) < 2 {
		return 0, MossQualityInsufficient, false
	}
	p, d := mean(peak), mean(dormant)
	if p <= 0 {
		return 0, MossQualityInsufficient, false
	}
	res := max(0, min(1, (p-d)/p))
	quality := MossQualityLimited
	if len(years) >= 3 {
		quality = MossQualityGood
	}
	return math.Round(res*1000) / 1000, quality, true
}

// MossFraction estimates the moss share of a paddock. Drainage sets the
// base share, low seasonality adds to it. A nil seasonality adds
// MossUnknownBonus.
func MossFraction(seasonality *float64, drainageScore float64) float64 {
	res := MossBase - drainageScore*MossBase
	switch {
	case seasonality == nil:
		res += MossUnknownBonus
	case *seasonality < MossSeasonalLimit:
		res += MossEvergreenBonus * (1 - *seasonality/MossSeasonalLimit)
	}
	res = max(0, min(MossMaxFraction, res))
	return math.Round(res*100) / 100
}

// EstimateMoss estimates moss cover of a paddock from its NDVI history and
// soil.
func EstimateMoss(
	series []records.NDVISample,
	soil records.SoilProfile,
	h records.Hemisphere,
) Moss {
	res := Moss{
		DrainageScore: DrainageScore(soil.Drainage),
		Quality:       MossQualityInsufficient,
	}
	if s, q, ok := Seasonality(series, h); ok {
		res.Seasonality = &s
		res.Quality = q
	}
	res.Fraction = MossFraction(res.Seasonality, res.DrainageScore)
	res.Correction = math.Round((1-res.Fraction)*100) / 100
	return res
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
