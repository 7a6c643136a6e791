package ioarchive

import (
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/skippy/farm/pkg/lifecycle"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/schema"
)

// rowID is the archive id of a paddock estimate of a day.
func rowID(paddockID string, date time.Time) string {
	key := paddockID + "|" + records.Day(date).Format(time.DateOnly)
	return gnuuid.New(key).String()
}

func growthRows(
	runID string,
	growth []lifecycle.PaddockGrowth,
	now time.Time,
) []schema.GrowthRate {
	var res []schema.GrowthRate
	for _, pg := range growth {
		for _, e := range pg.Estimates {
			res = append(res, schema.GrowthRate{
				ID:             rowID(pg.Paddock.ID, e.Date),
				RunID:          runID,
				PaddockID:      pg.Paddock.ID,
				PaddockName:    pg.Paddock.Name,
				Date:           records.Day(e.Date),
				KgHaDay:        e.GrowthKgHaDay,
				TempFactor:     e.TempFactor,
				MoistureFactor: e.MoistureFactor,
				SeasonalFactor: e.SeasonalFactor,
				SoilFactor:     e.SoilFactor,
				Season:         e.Season.String(),
				Forecast:       e.Forecast,
				UpdatedAt:      now,
			})
		}
	}
	return res
}

func feedRows(
	runID string,
	feed []lifecycle.PaddockFeed,
	now time.Time,
) []schema.FeedReading {
	res := make([]schema.FeedReading, 0, len(feed))
	for _, pf := range feed {
		f := pf.Feed
		row := schema.FeedReading{
			ID:          rowID(pf.Paddock.ID, f.Date),
			RunID:       runID,
			PaddockID:   pf.Paddock.ID,
			PaddockName: pf.Paddock.Name,
			Date:        records.Day(f.Date),
			Season:      f.Season.String(),
			NDVI:        f.NDVI,
			PastureNDVI: f.PastureNDVI,
			SDMKgHa:     f.SDMKgHa,
			FOOKgHa:     f.FOOKgHa,
			Correction:  f.Correction,
			Flags:       strings.Join(f.Flags, ","),
			UpdatedAt:   now,
		}
		if pf.GrowthRate != nil {
			row.GrowthRate = sql.NullFloat64{Float64: *pf.GrowthRate, Valid: true}
		}
		res = append(res, row)
	}
	return res
}

// changedGrowth drops rows whose archived rate differs by less than
// tolerance. Rows missing from the archive are always kept.
func changedGrowth(
	rows []schema.GrowthRate,
	archived map[string]float64,
	tolerance float64,
) (keep []schema.GrowthRate, skipped int) {
	for _, r := range rows {
		if old, ok := archived[r.ID]; ok && math.Abs(old-r.KgHaDay) < tolerance {
			skipped++
			continue
		}
		keep = append(keep, r)
	}
	return keep, skipped
}

// span returns the first and last day of estimates.
func span(dates []time.Time) (from, to time.Time) {
	for i, d := range dates {
		if i == 0 || d.Before(from) {
			from = d
		}
		if i == 0 || d.After(to) {
			to = d
		}
	}
	return from, to
}

// batchRows limits rows per statement so the number of parameters stays
// under the PostgreSQL limit of 65535.
func batchRows(batchSize, columns int) int {
	limit := 65535 / columns
	if batchSize <= 0 || batchSize > limit {
		return limit
	}
	return batchSize
}
