package growth

import (
	"time"

	"github.com/skippy/farm/pkg/records"
)

// Temperature response of cool-season pasture grasses, °C.
const (
	TempBase    = 4.0
	TempOptLow  = 12.0
	TempOptHigh = 22.0
	TempMax     = 32.0
)

// Soil moisture thresholds as fractions of available water capacity.
const (
	MoistureWilting  = 0.15
	MoistureStress   = 0.40
	MoistureOptimal  = 0.70
	MoistureWaterlog = 0.95
)

// TemperatureFactor is a trapezoid: zero at or below TempBase, rising to
// a plateau between TempOptLow and TempOptHigh, falling to zero at TempMax.
func TemperatureFactor(tempC float64) float64 {
	switch {
	case tempC <= TempBase:
		return 0
	case tempC < TempOptLow:
		return (tempC - TempBase) / (TempOptLow - TempBase)
	case tempC <= TempOptHigh:
		return 1
	case tempC < TempMax:
		return (TempMax - tempC) / (TempMax - TempOptHigh)
	default:
		return 0
	}
}

// MoistureFactor maps soil water fraction to a growth factor. Growth
// stops at the wilting point, is halved at the stress point, peaks
// between optimal and waterlog, and declines (to a floor of 0.3) when the
// soil is waterlogged.
func MoistureFactor(fraction float64) float64 {
	switch {
	case fraction <= MoistureWilting:
		return 0
	case fraction < MoistureStress:
		return (fraction - MoistureWilting) /
			(MoistureStress - MoistureWilting) * 0.5
	case fraction < MoistureOptimal:
		return 0.5 + (fraction-MoistureStress)/
			(MoistureOptimal-MoistureStress)*0.5
	case fraction <= MoistureWaterlog:
		return 1
	default:
		return max(0.3, 1-(fraction-MoistureWaterlog)*2)
	}
}

// drainageProfile describes how a drainage class affects growth and water.
type drainageProfile struct {
	// factor multiplies growth.
	factor float64
	// loss is the daily share of stored water lost to deep drainage.
	loss float64
	// ponding is the share of capacity that can be held above capacity
	// before runoff, which makes the soil waterlog.
	ponding float64
}

var drainageProfiles = map[records.Drainage]drainageProfile{
	records.ExcessivelyDrained:         {factor: 0.85, loss: 0.06},
	records.SomewhatExcessivelyDrained: {factor: 0.90, loss: 0.04},
	records.WellDrained:                {factor: 1.00, loss: 0.02},
	records.ModeratelyWellDrained:      {factor: 1.00, loss: 0.01},
	records.SomewhatPoorlyDrained:      {factor: 0.95},
	records.PoorlyDrained:              {factor: 0.85, ponding: 0.05},
	records.VeryPoorlyDrained:          {factor: 0.70, ponding: 0.10},
}

func profileOf(d records.Drainage) drainageProfile {
	if res, ok := drainageProfiles[d]; ok {
		return res
	}
	return drainageProfiles[records.WellDrained]
}

const (
	omBaseline    = 3.0
	omBonusPerPct = 0.02
	omBonusCap    = 0.15
)

// SoilFactor adjusts growth for drainage class and organic matter.
// Organic matter above 3% adds 2% per percent, capped at 15%.
func SoilFactor(soil records.SoilProfile) float64 {
	res := profileOf(soil.Drainage).factor
	if om := soil.OrganicMatter(); om > omBaseline {
		res *= 1 + min((om-omBaseline)*omBonusPerPct, omBonusCap)
	}
	return res
}

// monthlyMultipliers for the northern hemisphere, January first.
// They encode day length and dormancy relative to the spring peak.
var monthlyMultipliers = [12]float64{
	0.1875, 0.1875, 1.0, 1.0, 1.0, 0.3125,
	0.3125, 0.3125, 0.625, 0.625, 0.625, 0.1875,
}

// SeasonalMultiplier returns the month multiplier of the day t.
func SeasonalMultiplier(t time.Time, h records.Hemisphere) float64 {
	m := t.Month()
	if h == records.South {
		m = (m+5)%12 + 1
	}
	return monthlyMultipliers[m-1]
}
