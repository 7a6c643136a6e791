package iorun

import (
	"context"
	"slices"
	"time"

	"github.com/skippy/farm/pkg/growth"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/weather"
)

// PaddockGrowth is the growth of one paddock over a date range.
type PaddockGrowth struct {
	Paddock   records.Paddock
	Estimates []records.GrowthEstimate
	Summary   records.GrowthSummary
	// Err is DataGapError when days lack weather, or InvalidInputError.
	// Estimates of the covered days are kept.
	Err error
}

// Growth estimates daily growth of paddocks over rng. With forecast set,
// estimates continue ForecastDays past rng.To on stored modeled weather
// followed by climatology.
func (r *Runner) Growth(
	ctx context.Context,
	rng records.DateRange,
	ids []string,
	forecast bool,
) ([]PaddockGrowth, error) {
	start := time.Now()
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	paddocks, err := r.Paddocks(ctx, ids)
	if err != nil {
		return nil, err
	}
	soils, err := r.store.Soils(ctx)
	if err != nil {
		return nil, err
	}
	history, err := r.Weather(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]PaddockGrowth, len(paddocks))
	err = r.each(ctx, paddocks, func(i int, p records.Paddock) error {
		soil := soils[p.ID]
		soil.PaddockID = p.ID
		res[i] = r.paddockGrowth(p, history, soil, rng, forecast)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logDone("Growth estimated", len(res), start)
	return res, nil
}

func (r *Runner) paddockGrowth(
	p records.Paddock,
	history []records.WeatherSample,
	soil records.SoilProfile,
	rng records.DateRange,
	forecast bool,
) PaddockGrowth {
	res := PaddockGrowth{Paddock: p}
	est, err := r.growth.Estimate(p.ID, history, soil, rng)
	if err != nil {
		res.Err = err
		return res
	}
	res.Err = growth.Gaps(p.ID, est, rng)

	if forecast {
		fc, err := r.forecast(p.ID, history, soil, rng.To)
		if err != nil && res.Err == nil {
			res.Err = err
		}
		est = append(est, fc...)
	}
	res.Estimates = est
	res.Summary = growth.Summarize(p.ID, est)
	return res
}

// forecast splits history at the last day of the range. Later samples are
// the modeled forecast, extended with climatology to ForecastDays. Days of
// the range without weather get no forecast.
func (r *Runner) forecast(
	paddockID string,
	history []records.WeatherSample,
	soil records.SoilProfile,
	from time.Time,
) ([]records.GrowthEstimate, error) {
	from = records.Day(from)
	to := from.AddDate(0, 0, r.cfg.Growth.ForecastDays)

	var observed, projected []records.WeatherSample
	for _, v := range history {
		d := records.Day(v.Date)
		switch {
		case !d.After(from):
			observed = append(observed, v)
		case !d.After(to):
			projected = append(projected, v)
		}
	}
	projected, err := weather.Extend(observed, projected, from, to)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(projected, func(a, b records.WeatherSample) int {
		return a.Date.Compare(b.Date)
	})
	return r.growth.Forecast(paddockID, observed, projected, soil)
}
