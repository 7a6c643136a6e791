// Package growth estimates daily pasture dry matter growth of a paddock
// from weather and soil. It is a pure package: callers fetch and
// reconcile weather before calling the estimator.
package growth

import (
	"slices"
	"time"

	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/records"
)

// Estimator converts weather and soil into growth estimates. It keeps no
// state between calls and is safe for concurrent use.
type Estimator struct {
	basePotential   float64
	cropCoefficient float64
	hemisphere      records.Hemisphere
}

// New creates an Estimator from growth settings.
func New(cfg config.GrowthConfig) *Estimator {
	res := &Estimator{
		basePotential:   cfg.BasePotential,
		cropCoefficient: cfg.CropCoefficient,
		hemisphere:      records.Hemisphere(cfg.Hemisphere),
	}
	if res.hemisphere != records.South {
		res.hemisphere = records.North
	}
	return res
}

// Estimate returns one estimate per day of rng that has usable weather.
//
// Weather before rng.From spins up the soil water balance. Days without
// a weather sample, or without a temperature, are skipped and show up as
// gaps (see Gaps). Negative precipitation flags drought and is treated as
// zero rain. A malformed range or duplicate weather days return
// InvalidInputError.
func (e *Estimator) Estimate(
	paddockID string,
	weather []records.WeatherSample,
	soil records.SoilProfile,
	rng records.DateRange,
) ([]records.GrowthEstimate, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	samples, err := sortWeather(weather)
	if err != nil {
		return nil, err
	}
	return e.run(paddockID, samples, soil, rng, time.Time{}), nil
}

// Forecast continues the water balance of history through projected
// weather supplied by the caller and returns estimates of the projected
// days flagged as forecasts. Projected days must come after the last
// observed day.
func (e *Estimator) Forecast(
	paddockID string,
	history []records.WeatherSample,
	projected []records.WeatherSample,
	soil records.SoilProfile,
) ([]records.GrowthEstimate, error) {
	hist, err := sortWeather(history)
	if err != nil {
		return nil, err
	}
	proj, err := sortWeather(projected)
	if err != nil {
		return nil, err
	}
	if len(proj) == 0 {
		return nil, records.DataGapError(paddockID+" forecast", nil)
	}

	first := records.Day(proj[0].Date)
	if len(hist) > 0 {
		last := records.Day(hist[len(hist)-1].Date)
		if !first.After(last) {
			return nil, records.InvalidInputError(
				"projected weather starts on %s, not after observed %s",
				first.Format(time.DateOnly), last.Format(time.DateOnly),
			)
		}
	}

	rng := records.DateRange{
		From: first,
		To:   records.Day(proj[len(proj)-1].Date),
	}
	all := append(slices.Clone(hist), proj...)
	return e.run(paddockID, all, soil, rng, first), nil
}

// run walks sorted samples. Days from forecastFrom on are flagged as
// forecasts when forecastFrom is set.
func (e *Estimator) run(
	paddockID string,
	samples []records.WeatherSample,
	soil records.SoilProfile,
	rng records.DateRange,
	forecastFrom time.Time,
) []records.GrowthEstimate {
	wb := newWaterBalance(soil, e.cropCoefficient)
	soilFactor := SoilFactor(soil)
	to := records.Day(rng.To)

	res := make([]records.GrowthEstimate, 0, rng.Days())
	for _, w := range samples {
		day := records.Day(w.Date)
		if day.After(to) {
			break
		}
		wb.update(w.Rain(), w.ET0())
		if !rng.Contains(day) {
			continue
		}
		temp, ok := w.MeanTemp()
		if !ok {
			continue
		}

		est := records.GrowthEstimate{
			PaddockID:        paddockID,
			Date:             day,
			TempFactor:       TemperatureFactor(temp),
			MoistureFactor:   MoistureFactor(wb.fraction()),
			SeasonalFactor:   SeasonalMultiplier(day, e.hemisphere),
			SoilFactor:       soilFactor,
			MoistureFraction: wb.fraction(),
			Season:           records.SeasonOf(day, e.hemisphere),
			Forecast:         !forecastFrom.IsZero() && !day.Before(forecastFrom),
		}
		est.GrowthKgHaDay = e.basePotential * est.TempFactor *
			est.MoistureFactor * est.SeasonalFactor * est.SoilFactor
		est.Notes = notes(w, est)
		res = append(res, est)
	}
	return res
}

func notes(w records.WeatherSample, est records.GrowthEstimate) []string {
	var res []string
	if w.PrecipMM < 0 {
		res = append(res, "drought flag")
	}
	if est.TempFactor < 0.3 {
		res = append(res, "temp limited")
	}
	if est.MoistureFactor < 0.3 {
		if est.MoistureFraction < MoistureStress {
			res = append(res, "drought stress")
		} else {
			res = append(res, "waterlogged")
		}
	}
	return res
}

func sortWeather(
	weather []records.WeatherSample,
) ([]records.WeatherSample, error) {
	res := slices.Clone(weather)
	slices.SortStableFunc(res, func(a, b records.WeatherSample) int {
		return records.Day(a.Date).Compare(records.Day(b.Date))
	})
	for i := 1; i < len(res); i++ {
		if records.Day(res[i].Date).Equal(records.Day(res[i-1].Date)) {
			return nil, records.InvalidInputError(
				"duplicate weather sample for %s",
				res[i].Date.Format(time.DateOnly),
			)
		}
	}
	return res, nil
}

// Gaps returns DataGapError listing days of rng without an estimate, or
// nil when every day is covered.
func Gaps(
	paddockID string,
	estimates []records.GrowthEstimate,
	rng records.DateRange,
) error {
	seen := make(map[time.Time]struct{}, len(estimates))
	for _, v := range estimates {
		seen[records.Day(v.Date)] = struct{}{}
	}
	var missing []string
	for _, d := range rng.EachDay() {
		if _, ok := seen[d]; !ok {
			missing = append(missing, d.Format(time.DateOnly))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return records.DataGapError(paddockID, missing)
}

// Summarize aggregates estimates of one paddock.
func Summarize(
	paddockID string,
	estimates []records.GrowthEstimate,
) records.GrowthSummary {
	res := records.GrowthSummary{PaddockID: paddockID}
	for i, v := range estimates {
		if i == 0 {
			res.MinKgHaDay = v.GrowthKgHaDay
			res.MaxKgHaDay = v.GrowthKgHaDay
			res.From = v.Date
		}
		res.Days++
		res.TotalKgHa += v.GrowthKgHaDay
		res.MinKgHaDay = min(res.MinKgHaDay, v.GrowthKgHaDay)
		res.MaxKgHaDay = max(res.MaxKgHaDay, v.GrowthKgHaDay)
		res.To = v.Date
		if v.Forecast {
			res.ForecastDays++
		}
	}
	if res.Days > 0 {
		res.AvgKgHaDay = res.TotalKgHa / float64(res.Days)
	}
	return res
}
