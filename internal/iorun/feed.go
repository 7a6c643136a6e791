package iorun

import (
	"context"
	"slices"
	"time"

	"github.com/skippy/farm/pkg/grazing"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
)

// PaddockFeed is feed on offer of one paddock.
type PaddockFeed struct {
	Paddock records.Paddock
	Feed    sdm.FeedOnOffer
	// PressureKgHaDay is grazing pressure of animals currently in the
	// paddock.
	PressureKgHaDay float64
	// GrowthRate is SDM change per day between the two latest composites,
	// nil with fewer than two.
	GrowthRate *float64
	// Moss is the estimated moss cover removed from feed on offer.
	Moss sdm.Moss
	// Err is DataGapError without composites, or InvalidInputError.
	Err error
}

// Feed estimates feed on offer of paddocks from composites dated up to
// day, corrected for grazing pressure of the stored herd at day.
func (r *Runner) Feed(
	ctx context.Context,
	day time.Time,
	ids []string,
) ([]PaddockFeed, error) {
	start := time.Now()
	day = records.Day(day)
	all, err := r.store.Paddocks(ctx)
	if err != nil {
		return nil, err
	}
	paddocks, err := r.Paddocks(ctx, ids)
	if err != nil {
		return nil, err
	}
	herd, err := r.store.Herd(ctx)
	if err != nil {
		return nil, err
	}
	soils, err := r.store.Soils(ctx)
	if err != nil {
		return nil, err
	}
	consumption := grazing.PaddockConsumption(
		herd, all, day, grazing.DefaultMinAreaHa,
	)

	res := make([]PaddockFeed, len(paddocks))
	err = r.each(ctx, paddocks, func(i int, p records.Paddock) error {
		series, err := r.store.NDVI(ctx, p.ID)
		if err != nil {
			return err
		}
		series = slices.DeleteFunc(series, func(s records.NDVISample) bool {
			return records.Day(s.Date).After(day)
		})
		res[i] = r.paddockFeed(
			p, series, soils[p.ID], grazing.Pressure(consumption, p.ID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logDone("Feed on offer estimated", len(res), start)
	return res, nil
}

func (r *Runner) paddockFeed(
	p records.Paddock,
	series []records.NDVISample,
	soil records.SoilProfile,
	pressure float64,
) PaddockFeed {
	res := PaddockFeed{Paddock: p, PressureKgHaDay: pressure}
	latest, ok := records.Latest(series)
	if !ok {
		res.Err = records.DataGapError(p.ID+" NDVI", nil)
		return res
	}
	h := r.Hemisphere()
	season := records.SeasonOf(latest.Date, h)
	res.Feed, res.Err = r.sdm.FeedOnOffer(
		series, season, h, sdm.Grazing{PressureKgHaDay: pressure},
	)
	if res.Err != nil {
		return res
	}
	res.Moss = sdm.EstimateMoss(series, soil, h)
	res.Feed.ApplyMoss(res.Moss)
	if len(series) < 2 {
		return res
	}

	slices.SortFunc(series, func(a, b records.NDVISample) int {
		return a.Date.Compare(b.Date)
	})
	prev, cur := series[len(series)-2], series[len(series)-1]
	if rate, err := r.sdm.GrowthRate(prev, cur, h); err == nil {
		res.GrowthRate = &rate
	}
	return res
}
