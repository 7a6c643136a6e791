package growth_test

import (
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/skippy/farm/pkg/growth"
	"github.com/skippy/farm/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var april = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

func series(start time.Time, n int, tempC, precipMM float64) []records.WeatherSample {
	res := make([]records.WeatherSample, n)
	for i := range n {
		res[i] = records.WeatherSample{
			Date:      start.AddDate(0, 0, i),
			PrecipMM:  precipMM,
			TempMeanC: records.Float(tempC),
			ET0MM:     records.Float(2),
			Source:    records.SourceBlended,
		}
	}
	return res
}

func rangeOf(start time.Time, days int) records.DateRange {
	return records.DateRange{From: start, To: start.AddDate(0, 0, days-1)}
}

func wellDrained() records.SoilProfile {
	return records.SoilProfile{
		PaddockID: "p1",
		Drainage:  records.WellDrained,
		AWC:       records.Float(0.15),
	}
}

func estimator() *growth.Estimator {
	return growth.New(config.New().Growth)
}

func TestTemperatureFactor(t *testing.T) {
	tests := []struct {
		temp, exp float64
	}{
		{-5, 0}, {3, 0}, {4, 0}, {8, 0.5}, {12, 1},
		{17, 1}, {22, 1}, {27, 0.5}, {32, 0}, {40, 0},
	}
	for _, v := range tests {
		assert.InDelta(t, v.exp, growth.TemperatureFactor(v.temp), 1e-9,
			"temp %v", v.temp)
	}
}

func TestMoistureFactor(t *testing.T) {
	tests := []struct {
		fraction, exp float64
	}{
		{0, 0}, {0.15, 0}, {0.275, 0.25}, {0.4, 0.5}, {0.55, 0.75},
		{0.7, 1}, {0.95, 1}, {1.0, 0.9}, {1.5, 0.3},
	}
	for _, v := range tests {
		assert.InDelta(t, v.exp, growth.MoistureFactor(v.fraction), 1e-9,
			"fraction %v", v.fraction)
	}
}

func TestSoilFactor(t *testing.T) {
	tests := []struct {
		msg      string
		drainage records.Drainage
		om       *float64
		exp      float64
	}{
		{"unknown drainage", "", nil, 1.0},
		{"well drained", records.WellDrained, nil, 1.0},
		{"very poorly drained", records.VeryPoorlyDrained, nil, 0.70},
		{"excessively drained", records.ExcessivelyDrained, nil, 0.85},
		{"organic matter bonus", records.WellDrained, records.Float(5), 1.04},
		{"organic matter cap", records.WellDrained, records.Float(20), 1.15},
		{"low organic matter", records.PoorlyDrained, records.Float(2), 0.85},
	}
	for _, v := range tests {
		soil := records.SoilProfile{Drainage: v.drainage, OrganicMatterPct: v.om}
		assert.InDelta(t, v.exp, growth.SoilFactor(soil), 1e-9, v.msg)
	}
}

func TestSeasonalMultiplier(t *testing.T) {
	jul := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	oct := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, growth.SeasonalMultiplier(april, records.North))
	assert.Equal(t, 0.3125, growth.SeasonalMultiplier(jul, records.North))
	assert.Equal(t, 0.1875, growth.SeasonalMultiplier(jul, records.South))
	assert.Equal(t, 0.625, growth.SeasonalMultiplier(oct, records.North))
	assert.Equal(t, 1.0, growth.SeasonalMultiplier(oct, records.South))
}

func TestEstimateFirstDay(t *testing.T) {
	w := series(april, 1, 15, 0)
	res, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 1))
	require.NoError(t, err)
	require.Len(t, res, 1)

	est := res[0]
	assert.Equal(t, "p1", est.PaddockID)
	assert.Equal(t, april, est.Date)
	assert.Equal(t, records.Spring, est.Season)
	assert.Equal(t, 1.0, est.TempFactor)
	assert.Equal(t, 1.0, est.SeasonalFactor)
	assert.Equal(t, 1.0, est.SoilFactor)
	assert.InDelta(t, 0.4508, est.MoistureFraction, 1e-9)
	assert.InDelta(t, 0.5846667, est.MoistureFactor, 1e-6)
	assert.InDelta(t, 46.7733, est.GrowthKgHaDay, 1e-3)
	assert.False(t, est.Forecast)
}

func TestEstimateZeroBelowCoolSeasonMinimum(t *testing.T) {
	for _, precip := range []float64{-1, 0, 5, 40, 150} {
		w := series(april, 10, 2, precip)
		res, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 10))
		require.NoError(t, err)
		require.Len(t, res, 10)
		for _, v := range res {
			assert.Equal(t, 0.0, v.GrowthKgHaDay, "precip %v", precip)
			assert.Contains(t, v.Notes, "temp limited")
		}
	}
}

func TestEstimateDroughtFlag(t *testing.T) {
	w := series(april, 30, 15, 3)
	w[12].PrecipMM = -1

	res, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 30))
	require.NoError(t, err)
	require.Len(t, res, 30)

	flagged := res[12]
	assert.Equal(t, april.AddDate(0, 0, 12), flagged.Date)
	assert.Contains(t, flagged.Notes, "drought flag")
	assert.GreaterOrEqual(t, flagged.GrowthKgHaDay, 0.0)

	w[12].PrecipMM = 0
	same, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 30))
	require.NoError(t, err)
	assert.Equal(t, same[12].GrowthKgHaDay, flagged.GrowthKgHaDay,
		"negative precipitation counts as no rain")
}

func TestEstimateSkipsMissingDays(t *testing.T) {
	w := series(april, 10, 15, 2)
	w = append(w[:4], w[5:]...)
	rng := rangeOf(april, 10)

	res, err := estimator().Estimate("p1", w, wellDrained(), rng)
	require.NoError(t, err)
	assert.Len(t, res, 9)
	for _, v := range res {
		assert.NotEqual(t, april.AddDate(0, 0, 4), v.Date)
	}

	err = growth.Gaps("p1", res, rng)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DataGapError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "2025-04-05")
	assert.True(t, records.IsDataGap(err))

	full, err := estimator().Estimate("p1", series(april, 10, 15, 2), wellDrained(), rng)
	require.NoError(t, err)
	assert.NoError(t, growth.Gaps("p1", full, rng))
}

func TestEstimateMissingTemperatureKeepsRain(t *testing.T) {
	rng := rangeOf(april, 5)

	withRain := series(april, 5, 15, 0)
	withRain[2].TempMeanC = nil
	withRain[2].PrecipMM = 30

	noSample := series(april, 5, 15, 0)
	noSample = append(noSample[:2], noSample[3:]...)

	a, err := estimator().Estimate("p1", withRain, wellDrained(), rng)
	require.NoError(t, err)
	b, err := estimator().Estimate("p1", noSample, wellDrained(), rng)
	require.NoError(t, err)

	require.Len(t, a, 4)
	require.Len(t, b, 4)
	assert.Greater(t, a[2].MoistureFraction, b[2].MoistureFraction)
}

func TestEstimateMinMaxTemperature(t *testing.T) {
	w := series(april, 1, 0, 0)
	w[0].TempMeanC = nil
	w[0].TempMinC = records.Float(6)
	w[0].TempMaxC = records.Float(10)

	res, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 1))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.InDelta(t, 0.5, res[0].TempFactor, 1e-9)
}

func TestEstimateInvalidInput(t *testing.T) {
	w := series(april, 5, 15, 2)

	t.Run("range starts after it ends", func(t *testing.T) {
		rng := records.DateRange{From: april.AddDate(0, 0, 3), To: april}
		_, err := estimator().Estimate("p1", w, wellDrained(), rng)
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.InvalidInputError, gnErr.Code)
	})

	t.Run("empty range boundary", func(t *testing.T) {
		_, err := estimator().Estimate("p1", w, wellDrained(), records.DateRange{})
		assert.True(t, records.IsInvalidInput(err))
	})

	t.Run("duplicate day", func(t *testing.T) {
		dup := append(series(april, 5, 15, 2), w[1])
		_, err := estimator().Estimate("p1", dup, wellDrained(), rangeOf(april, 5))
		assert.True(t, records.IsInvalidInput(err))
	})
}

func TestEstimateSpinUp(t *testing.T) {
	start := april.AddDate(0, 0, -10)
	w := series(start, 15, 15, 0)
	rng := rangeOf(april, 5)

	res, err := estimator().Estimate("p1", w, wellDrained(), rng)
	require.NoError(t, err)
	require.Len(t, res, 5)
	assert.Equal(t, april, res[0].Date)

	cold, err := estimator().Estimate("p1", w[10:], wellDrained(), rng)
	require.NoError(t, err)
	assert.Less(t, res[0].MoistureFraction, cold[0].MoistureFraction,
		"ten dry days before the range deplete soil water")
}

func TestEstimateUnsortedInput(t *testing.T) {
	w := series(april, 5, 15, 2)
	shuffled := []records.WeatherSample{w[3], w[0], w[4], w[2], w[1]}

	a, err := estimator().Estimate("p1", w, wellDrained(), rangeOf(april, 5))
	require.NoError(t, err)
	b, err := estimator().Estimate("p1", shuffled, wellDrained(), rangeOf(april, 5))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateIsPure(t *testing.T) {
	w := series(april, 20, 14, 4)
	est := estimator()
	a, err := est.Estimate("p1", w, wellDrained(), rangeOf(april, 20))
	require.NoError(t, err)
	b, err := est.Estimate("p1", w, wellDrained(), rangeOf(april, 20))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateDrainage(t *testing.T) {
	rng := rangeOf(april, 10)

	t.Run("poorly drained soil waterlogs", func(t *testing.T) {
		w := series(april, 10, 15, 40)
		poor := records.SoilProfile{Drainage: records.VeryPoorlyDrained}
		well := records.SoilProfile{Drainage: records.WellDrained}

		p, err := estimator().Estimate("p1", w, poor, rng)
		require.NoError(t, err)
		g, err := estimator().Estimate("p1", w, well, rng)
		require.NoError(t, err)

		last := len(p) - 1
		assert.Greater(t, p[last].MoistureFraction, 1.0)
		assert.Less(t, p[last].MoistureFactor, g[last].MoistureFactor)
		assert.Less(t, p[last].GrowthKgHaDay, g[last].GrowthKgHaDay)
	})

	t.Run("excessively drained soil depletes faster", func(t *testing.T) {
		w := series(april, 10, 15, 0)
		fast := records.SoilProfile{Drainage: records.ExcessivelyDrained}
		moderate := records.SoilProfile{Drainage: records.ModeratelyWellDrained}

		f, err := estimator().Estimate("p1", w, fast, rng)
		require.NoError(t, err)
		m, err := estimator().Estimate("p1", w, moderate, rng)
		require.NoError(t, err)

		last := len(f) - 1
		assert.Less(t, f[last].MoistureFraction, m[last].MoistureFraction)
	})
}

func TestForecast(t *testing.T) {
	hist := series(april, 10, 15, 2)
	proj := series(april.AddDate(0, 0, 10), 5, 16, 0)
	for i := range proj {
		proj[i].Source = records.SourceForecast
	}

	res, err := estimator().Forecast("p1", hist, proj, wellDrained())
	require.NoError(t, err)
	require.Len(t, res, 5)
	for _, v := range res {
		assert.True(t, v.Forecast)
	}
	assert.Equal(t, april.AddDate(0, 0, 10), res[0].Date)

	all := append(series(april, 10, 15, 2), proj...)
	cont, err := estimator().Estimate("p1", all, wellDrained(), rangeOf(april, 15))
	require.NoError(t, err)
	assert.InDelta(t, cont[10].GrowthKgHaDay, res[0].GrowthKgHaDay, 1e-9,
		"forecast continues the observed water balance")

	_, err = estimator().Forecast("p1", hist, hist[5:], wellDrained())
	assert.True(t, records.IsInvalidInput(err))

	_, err = estimator().Forecast("p1", hist, nil, wellDrained())
	assert.True(t, records.IsDataGap(err))
}

func TestSummarize(t *testing.T) {
	ests := []records.GrowthEstimate{
		{Date: april, GrowthKgHaDay: 10},
		{Date: april.AddDate(0, 0, 1), GrowthKgHaDay: 30},
		{Date: april.AddDate(0, 0, 2), GrowthKgHaDay: 20, Forecast: true},
	}
	res := growth.Summarize("p1", ests)
	assert.Equal(t, 3, res.Days)
	assert.Equal(t, 60.0, res.TotalKgHa)
	assert.Equal(t, 20.0, res.AvgKgHaDay)
	assert.Equal(t, 10.0, res.MinKgHaDay)
	assert.Equal(t, 30.0, res.MaxKgHaDay)
	assert.Equal(t, 1, res.ForecastDays)
	assert.Equal(t, april, res.From)

	empty := growth.Summarize("p2", nil)
	assert.Equal(t, 0, empty.Days)
	assert.Equal(t, 0.0, empty.AvgKgHaDay)
}
