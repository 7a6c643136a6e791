package ioarchive

import (
	"testing"
	"time"

	"github.com/skippy/farm/pkg/lifecycle"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/schema"
	"github.com/skippy/farm/pkg/sdm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRowID(t *testing.T) {
	assert := assert.New(t)
	id := rowID("p1", day(4, 1))
	assert.Len(id, 36)
	assert.Equal(id, rowID("p1", day(4, 1).Add(10*time.Hour)))
	assert.NotEqual(id, rowID("p1", day(4, 2)))
	assert.NotEqual(id, rowID("p2", day(4, 1)))
}

func TestGrowthRows(t *testing.T) {
	assert := assert.New(t)
	now := time.Now()
	rows := growthRows("run", []lifecycle.PaddockGrowth{
		{
			Paddock: records.Paddock{ID: "p1", Name: "Home"},
			Estimates: []records.GrowthEstimate{
				{Date: day(4, 1), GrowthKgHaDay: 20, Season: records.Spring},
				{Date: day(4, 2), GrowthKgHaDay: 22, Forecast: true},
			},
		},
		{Paddock: records.Paddock{ID: "p2"}},
	}, now)
	require.Len(t, rows, 2)
	assert.Equal("Home", rows[0].PaddockName)
	assert.Equal("spring", rows[0].Season)
	assert.Equal(20.0, rows[0].KgHaDay)
	assert.True(rows[1].Forecast)
	assert.Equal("run", rows[1].RunID)
	assert.Equal(rowID("p1", day(4, 2)), rows[1].ID)
}

func TestFeedRows(t *testing.T) {
	assert := assert.New(t)
	rate := 12.5
	rows := feedRows("run", []lifecycle.PaddockFeed{
		{
			Paddock:    records.Paddock{ID: "p1", Name: "Home"},
			Feed:       sdm.FeedOnOffer{Date: day(5, 1), SDMKgHa: 1800, FOOKgHa: 1300, Flags: []string{"low_ndvi", "stale"}},
			GrowthRate: &rate,
		},
		{
			Paddock: records.Paddock{ID: "p2"},
			Feed:    sdm.FeedOnOffer{Date: day(5, 3)},
		},
	}, time.Now())
	require.Len(t, rows, 2)
	assert.Equal("low_ndvi,stale", rows[0].Flags)
	assert.True(rows[0].GrowthRate.Valid)
	assert.Equal(12.5, rows[0].GrowthRate.Float64)
	assert.False(rows[1].GrowthRate.Valid)
	assert.Equal(1300.0, rows[0].FOOKgHa)
}

func TestChangedGrowth(t *testing.T) {
	rows := []schema.GrowthRate{
		{ID: "a", KgHaDay: 20},
		{ID: "b", KgHaDay: 20},
		{ID: "c", KgHaDay: 20},
	}
	archived := map[string]float64{"a": 20.4, "b": 25}
	keep, skipped := changedGrowth(rows, archived, 1.0)
	assert.Equal(t, 1, skipped)
	require.Len(t, keep, 2)
	assert.Equal(t, "b", keep[0].ID)
	assert.Equal(t, "c", keep[1].ID)

	keep, skipped = changedGrowth(rows, archived, 0)
	assert.Len(t, keep, 3)
	assert.Equal(t, 0, skipped)
}

func TestSpanAndBatch(t *testing.T) {
	from, to := span([]time.Time{day(4, 3), day(4, 1), day(4, 9)})
	assert.Equal(t, day(4, 1), from)
	assert.Equal(t, day(4, 9), to)
	from, _ = span(nil)
	assert.True(t, from.IsZero())

	assert.Equal(t, 100, batchRows(100, 14))
	assert.Equal(t, 65535/14, batchRows(5000, 14))
	assert.Equal(t, 65535/15, batchRows(0, 15))
}
