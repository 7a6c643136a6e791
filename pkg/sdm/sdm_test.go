package sdm_test

import (
	"math"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/pkg/config"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/skippy/farm/pkg/records"
	"github.com/skippy/farm/pkg/sdm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	may     = date(2025, 5, 1)
	july    = date(2025, 7, 1)
	january = date(2025, 1, 15)
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func estimator() *sdm.Estimator {
	return sdm.New(config.New().SDM, nil)
}

func sample(date time.Time, ndvi, treeCover float64) records.NDVISample {
	return records.NDVISample{
		PaddockID: "p1",
		Date:      date,
		NDVI:      ndvi,
		TreeCover: treeCover,
	}
}

func TestEstimate(t *testing.T) {
	assert := assert.New(t)
	e := estimator()
	res, err := e.Estimate(
		[]records.NDVISample{sample(may, 0.4, 0)}, records.Spring,
	)
	require.Nil(t, err)
	assert.InDelta(3071.82, res, 0.01)

	res, err = e.Estimate(
		[]records.NDVISample{sample(may, -0.2, 0)}, records.Spring,
	)
	require.Nil(t, err)
	assert.Equal(0.0, res)

	res, err = e.Estimate(
		[]records.NDVISample{sample(may, 1, 0)}, records.Spring,
	)
	require.Nil(t, err)
	assert.Equal(4500.0, res, "capped by curve maximum")
}

func TestEstimateMonotone(t *testing.T) {
	e := estimator()
	seasons := []records.Season{
		records.Winter, records.Spring, records.Summer, records.Fall,
	}
	for _, season := range seasons {
		for _, tc := range []float64{0, 0.3, 0.9} {
			prev := -1.0
			for i := -100; i <= 100; i++ {
				ndvi := float64(i) / 100
				res, err := e.Estimate(
					[]records.NDVISample{sample(may, ndvi, tc)}, season,
				)
				require.Nil(t, err)
				assert.GreaterOrEqual(t, res, 0.0)
				assert.GreaterOrEqual(t, res, prev,
					"%s ndvi %v tree cover %v", season, ndvi, tc)
				prev = res
			}
		}
	}
}

func TestEstimateInvalid(t *testing.T) {
	e := estimator()
	tests := []struct {
		msg    string
		sample records.NDVISample
	}{
		{"ndvi over 1", sample(may, 1.5, 0)},
		{"ndvi under -1", sample(may, -1.2, 0)},
		{"ndvi nan", sample(may, math.NaN(), 0)},
		{"fully wooded", sample(may, 0.5, 1)},
		{"negative tree cover", sample(may, 0.5, -0.1)},
	}
	for _, v := range tests {
		_, err := e.Estimate([]records.NDVISample{v.sample}, records.Spring)
		require.NotNil(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.InvalidInputError, gnErr.Code, v.msg)
	}

	_, err := e.Estimate(
		[]records.NDVISample{sample(may, 0.5, 0)}, records.UnknownSeason,
	)
	assert.True(t, records.IsInvalidInput(err))
}

func TestEstimateEmpty(t *testing.T) {
	_, err := estimator().Estimate(nil, records.Spring)
	require.NotNil(t, err)
	assert.True(t, records.IsDataGap(err))
}

func TestEstimateLatest(t *testing.T) {
	e := estimator()
	series := []records.NDVISample{
		sample(may, 0.4, 0),
		sample(may.AddDate(0, -1, 0), 0.8, 0),
	}
	res, err := e.Estimate(series, records.Spring)
	require.Nil(t, err)
	assert.InDelta(t, 3071.82, res, 0.01)
}

func TestPastureNDVI(t *testing.T) {
	assert := assert.New(t)
	e := estimator()
	assert.InDelta(0.5333, e.PastureNDVI(sample(may, 0.6, 0.25)), 1e-4)
	assert.Equal(0.6, e.PastureNDVI(sample(may, 0.6, 0)))
	assert.Equal(-1.0, e.PastureNDVI(sample(may, -0.9, 0.5)))

	withTrees, err := e.Estimate(
		[]records.NDVISample{sample(may, 0.6, 0.25)}, records.Spring,
	)
	require.Nil(t, err)
	open, err := e.Estimate(
		[]records.NDVISample{sample(may, 0.6, 0)}, records.Spring,
	)
	require.Nil(t, err)
	assert.Less(withTrees, open)
}

func TestCalibrationMerge(t *testing.T) {
	assert := assert.New(t)
	flat := sdm.Curve{
		Name: "flat", Scale: 1, Coef: 1, Offset: 999, MaxSDM: 1000,
	}
	cal := sdm.DefaultCalibration().Merge(sdm.Calibration{records.Spring: flat})
	assert.Equal("flat", cal.Curve(records.Spring).Name)
	assert.Equal("summer dry", cal.Curve(records.Summer).Name)
	assert.Equal("spring growth",
		sdm.DefaultCalibration().Curve(records.Spring).Name)
	assert.Equal(sdm.AnnualCurve, sdm.Calibration{}.Curve(records.Winter))
	assert.True(flat.Valid())
	assert.False(sdm.Curve{Scale: 1, Coef: -1, MaxSDM: 10}.Valid())
}

func TestGrowthRate(t *testing.T) {
	assert := assert.New(t)
	e := estimator()
	april := may.AddDate(0, -1, 0)
	res, err := e.GrowthRate(
		sample(april, 0.3, 0), sample(may, 0.4, 0), records.North,
	)
	require.Nil(t, err)
	assert.InDelta(32.658, res, 0.01)

	res, err = e.GrowthRate(
		sample(april, 0.4, 0), sample(may, 0.3, 0), records.North,
	)
	require.Nil(t, err)
	assert.InDelta(-32.658, res, 0.01)

	res, err = e.GrowthRate(
		sample(april, -0.3, 0), sample(may, -0.5, 0), records.North,
	)
	require.Nil(t, err)
	assert.Equal(0.0, res)

	_, err = e.GrowthRate(sample(may, 0.3, 0), sample(may, 0.4, 0), records.North)
	assert.True(records.IsInvalidInput(err))

	_, err = e.GrowthRate(sample(april, 0.3, 0), sample(may, 2, 0), records.North)
	assert.True(records.IsInvalidInput(err))
}

func TestGrazingCorrection(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(0.85, sdm.GrazingCorrection(sdm.Grazing{}), 1e-9)
	assert.InDelta(0.5698,
		sdm.GrazingCorrection(sdm.Grazing{PressureKgHaDay: 100}), 1e-4)
	assert.Equal(0.25,
		sdm.GrazingCorrection(sdm.Grazing{PressureKgHaDay: 1000}))

	rested := sdm.Grazing{RestDays: 7, LastPressureKgHaDay: 100}
	assert.InDelta(0.7108, sdm.GrazingCorrection(rested), 1e-3)

	prev := 0.0
	for days := 1; days <= 60; days++ {
		rested.RestDays = days
		res := sdm.GrazingCorrection(rested)
		assert.Greater(res, prev)
		assert.LessOrEqual(res, 0.85)
		prev = res
	}
}

func TestFeedOnOffer(t *testing.T) {
	assert := assert.New(t)
	e := estimator()
	res, err := e.FeedOnOffer(
		[]records.NDVISample{sample(may, 0.4, 0)}, records.Spring, records.North,
		sdm.Grazing{},
	)
	require.Nil(t, err)
	assert.Equal("p1", res.PaddockID)
	assert.InDelta(3071.82, res.SDMKgHa, 0.01)
	assert.InDelta(2303.86, res.RawKgHa, 0.01)
	assert.InDelta(1958.28, res.FOOKgHa, 0.01)
	assert.True(res.Valid())

	grazed, err := e.FeedOnOffer(
		[]records.NDVISample{sample(may, 0.4, 0)}, records.Spring, records.North,
		sdm.Grazing{PressureKgHaDay: 50},
	)
	require.Nil(t, err)
	assert.Less(grazed.FOOKgHa, res.FOOKgHa)

	assert.Equal(1.0, res.MossCorrection)

	mossy := res
	mossy.ApplyMoss(sdm.Moss{Fraction: 0.2, Correction: 0.8})
	assert.InDelta(1958.28*0.8, mossy.FOOKgHa, 0.01)
	assert.Equal(0.8, mossy.MossCorrection)

	_, err = e.FeedOnOffer(nil, records.Spring, records.North, sdm.Grazing{})
	assert.True(records.IsDataGap(err))
}

func TestQualityFlags(t *testing.T) {
	tests := []struct {
		msg    string
		sample records.NDVISample
		flags  []string
	}{
		{"clean", sample(may, 0.5, 0.1), nil},
		{"negative", sample(may, -0.1, 0), []string{sdm.FlagNegativeNDVI}},
		{"bare", sample(may, 0.05, 0), []string{sdm.FlagNearBare}},
		{"trees", sample(may, 0.5, 0.3), []string{sdm.FlagHighTreeCover}},
		{
			"variance",
			records.NDVISample{NDVI: 0.5, StdDev: records.Float(0.4)},
			[]string{sdm.FlagHighVariance},
		},
		{
			"clouds in spring",
			records.NDVISample{Date: may, NDVI: 0.5, CloudFreePct: records.Float(15)},
			[]string{sdm.FlagLowCloudFree},
		},
		{
			"spring window",
			records.NDVISample{Date: may, NDVI: 0.5, CloudFreePct: records.Float(25)},
			nil,
		},
		{
			"summer window",
			records.NDVISample{Date: july, NDVI: 0.5, CloudFreePct: records.Float(25)},
			[]string{sdm.FlagLowCloudFree},
		},
		{
			"winter window",
			records.NDVISample{Date: january, NDVI: 0.5, CloudFreePct: records.Float(12)},
			nil,
		},
	}
	for _, v := range tests {
		assert.Equal(t, v.flags, sdm.QualityFlags(v.sample, records.North), v.msg)
	}
	south := records.NDVISample{Date: january, NDVI: 0.5, CloudFreePct: records.Float(25)}
	assert.Equal(t, []string{sdm.FlagLowCloudFree}, sdm.QualityFlags(south, records.South))
}

func TestDrainageScore(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.0, sdm.DrainageScore(records.VeryPoorlyDrained))
	assert.Equal(0.8, sdm.DrainageScore(records.WellDrained))
	assert.Equal(0.5, sdm.DrainageScore(""))
}

func TestSeasonality(t *testing.T) {
	assert := assert.New(t)
	var series []records.NDVISample
	for _, y := range []int{2022, 2023, 2024} {
		series = append(series,
			records.NDVISample{Date: date(y, 1, 10), NDVI: 0.4},
			records.NDVISample{Date: date(y, 6, 10), NDVI: 0.8},
			records.NDVISample{Date: date(y, 9, 10), NDVI: 0.6},
		)
	}
	res, quality, ok := sdm.Seasonality(series, records.North)
	require.True(t, ok)
	assert.Equal(0.5, res)
	assert.Equal(sdm.MossQualityGood, quality)

	res, quality, ok = sdm.Seasonality(series[:6], records.North)
	require.True(t, ok)
	assert.Equal(0.5, res)
	assert.Equal(sdm.MossQualityLimited, quality)

	_, quality, ok = sdm.Seasonality(series[:3], records.North)
	assert.False(ok)
	assert.Equal(sdm.MossQualityInsufficient, quality)

	// south of the equator January is the peak and June the dormant month
	res, _, ok = sdm.Seasonality(series, records.South)
	require.True(t, ok)
	assert.Equal(0.0, res)
}

func TestMossFraction(t *testing.T) {
	evergreen, seasonal := 0.0, 0.5
	tests := []struct {
		msg         string
		seasonality *float64
		drainage    float64
		fraction    float64
	}{
		{"poor evergreen", &evergreen, 0, 0.40},
		{"poor seasonal", &seasonal, 0, 0.35},
		{"well drained seasonal", &seasonal, 0.8, 0.07},
		{"well drained unknown", nil, 0.8, 0.12},
		{"excessive seasonal", &seasonal, 1, 0},
	}
	for _, v := range tests {
		assert.InDelta(t, v.fraction, sdm.MossFraction(v.seasonality, v.drainage),
			1e-9, v.msg)
	}
}

func TestEstimateMoss(t *testing.T) {
	assert := assert.New(t)
	soil := records.SoilProfile{Drainage: records.VeryPoorlyDrained}
	res := sdm.EstimateMoss(nil, soil, records.North)
	assert.Nil(res.Seasonality)
	assert.Equal(sdm.MossQualityInsufficient, res.Quality)
	assert.Equal(0.0, res.DrainageScore)
	assert.InDelta(0.40, res.Fraction, 1e-9)
	assert.InDelta(0.60, res.Correction, 1e-9)

	series := []records.NDVISample{
		{Date: date(2024, 1, 10), NDVI: 0.4},
		{Date: date(2024, 2, 10), NDVI: 0.4},
		{Date: date(2024, 6, 10), NDVI: 0.8},
		{Date: date(2024, 7, 10), NDVI: 0.8},
	}
	soil = records.SoilProfile{Drainage: records.WellDrained}
	res = sdm.EstimateMoss(series, soil, records.North)
	require.NotNil(t, res.Seasonality)
	assert.Equal(0.5, *res.Seasonality)
	assert.Equal(sdm.MossQualityLimited, res.Quality)
	assert.InDelta(0.07, res.Fraction, 1e-9)
	assert.InDelta(0.93, res.Correction, 1e-9)
}
