package records

import (
	"time"
)

// WeatherSource tags where a daily sample came from.
type WeatherSource string

const (
	// SourceStation is a delayed but accurate weather station reading.
	SourceStation WeatherSource = "station"
	// SourceModel is a near-real-time modeled reading.
	SourceModel WeatherSource = "model"
	// SourceBlended combines station and model values for the same day.
	SourceBlended WeatherSource = "blended"
	// SourceForecast is a projected reading from a forecast model.
	SourceForecast WeatherSource = "forecast"
	// SourceClimatology is a projection from historical averages.
	SourceClimatology WeatherSource = "climatology"
)

// DefaultET0MM is used when a sample has no reference evapotranspiration.
const DefaultET0MM = 2.0

// WeatherSample is a daily weather observation.
type WeatherSample struct {
	Date time.Time `json:"date"`

	// PrecipMM is daily precipitation. Negative values flag drought
	// and are treated as zero rainfall.
	PrecipMM float64 `json:"precipMm"`

	TempMinC  *float64 `json:"tempMinC,omitempty"`
	TempMaxC  *float64 `json:"tempMaxC,omitempty"`
	TempMeanC *float64 `json:"tempMeanC,omitempty"`
	ET0MM     *float64 `json:"et0Mm,omitempty"`

	Source WeatherSource `json:"source"`
}

// MeanTemp returns the daily mean temperature. When TempMeanC is absent
// it is derived from the minimum and maximum. The second value is false
// when no temperature is available.
func (w WeatherSample) MeanTemp() (float64, bool) {
	if w.TempMeanC != nil {
		return *w.TempMeanC, true
	}
	if w.TempMinC != nil && w.TempMaxC != nil {
		return (*w.TempMinC + *w.TempMaxC) / 2, true
	}
	return 0, false
}

// Rain returns precipitation with drought flags mapped to zero.
func (w WeatherSample) Rain() float64 {
	if w.PrecipMM < 0 {
		return 0
	}
	return w.PrecipMM
}

// ET0 returns reference evapotranspiration or DefaultET0MM.
func (w WeatherSample) ET0() float64 {
	if w.ET0MM == nil || *w.ET0MM < 0 {
		return DefaultET0MM
	}
	return *w.ET0MM
}

// Float returns a pointer to v. It is a convenience for building samples
// with optional fields.
func Float(v float64) *float64 {
	return &v
}
