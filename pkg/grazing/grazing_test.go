package grazing_test

import (
	"testing"
	"time"

	"github.com/skippy/farm/pkg/grazing"
	"github.com/skippy/farm/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

func flock() records.Herd {
	born := date(3, 1)
	lamb := func(id string) records.AnimalRecord {
		return records.AnimalRecord{
			AnimalID:   id,
			AgeClass:   "ewe_lamb",
			OnFarm:     true,
			BirthDate:  &born,
			LocationID: str("p1"),
			Parents: []records.ParentRef{
				{Role: records.Dam, AnimalID: "ewe1"},
			},
		}
	}
	return records.NewHerd([]records.AnimalRecord{
		{
			AnimalID: "ewe1", Name: "Daisy", AgeClass: "ewe", OnFarm: true,
			WeightKg: records.Float(70), LocationID: str("p1"),
		},
		lamb("lamb1"),
		lamb("lamb2"),
		{AnimalID: "ram1", AgeClass: "ram", OnFarm: true, LocationID: str("pen")},
		{AnimalID: "w1", AgeClass: "wether", OnFarm: false, LocationID: str("p1")},
		{AnimalID: "stray", AgeClass: "ewe", OnFarm: true},
	})
}

func paddocks() []records.Paddock {
	return []records.Paddock{
		{ID: "p1", Name: "Home", AreaHa: 2},
		{ID: "pen", Name: "Pen", AreaHa: 0.1},
	}
}

func TestAnimalIntake(t *testing.T) {
	assert := assert.New(t)
	herd := flock()

	res := grazing.AnimalIntake(herd["ewe1"], 2)
	assert.True(res.Weighed)
	assert.InDelta(1.75, res.BaseKg, 1e-9)
	assert.Equal(2.3, res.Multiplier)
	assert.InDelta(4.025, res.TotalKg, 1e-9)
	assert.Equal("Daisy", res.Label)
	assert.Equal("p1", res.PaddockID)

	res = grazing.AnimalIntake(herd["ram1"], 0)
	assert.False(res.Weighed)
	assert.Equal(160.0, res.WeightKg)
	assert.InDelta(4.0, res.TotalKg, 1e-9)

	res = grazing.AnimalIntake(herd["ewe1"], 5)
	assert.Equal(2.9, res.Multiplier)

	res = grazing.AnimalIntake(records.AnimalRecord{AgeClass: "alpaca"}, 0)
	assert.Equal(140.0, res.WeightKg)
	assert.InDelta(3.5, res.TotalKg, 1e-9)
}

func TestNursingLambs(t *testing.T) {
	herd := flock()
	res := grazing.NursingLambs(herd, date(4, 1))
	assert.Equal(t, map[string][]string{"ewe1": {"lamb1", "lamb2"}}, res)

	wean, ok := grazing.WeanDate(herd["lamb1"])
	require.True(t, ok)
	assert.Equal(t, date(6, 29), wean)
	assert.Empty(t, grazing.NursingLambs(herd, date(6, 29)))

	early := date(4, 15)
	l := herd["lamb2"]
	l.WeanDate = &early
	herd["lamb2"] = l
	res = grazing.NursingLambs(herd, date(5, 1))
	assert.Equal(t, []string{"lamb1"}, res["ewe1"])
}

func TestPaddockConsumption(t *testing.T) {
	assert := assert.New(t)
	res := grazing.PaddockConsumption(
		flock(), paddocks(), date(4, 1), grazing.DefaultMinAreaHa,
	)
	require.Len(t, res, 1)
	assert.Equal("p1", res[0].PaddockID)
	assert.Equal(3, res[0].Animals)
	assert.InDelta(7.175, res[0].TotalKgDay, 1e-9)
	assert.InDelta(3.5875, res[0].KgHaDay, 1e-9)
	assert.InDelta(3.5875, grazing.Pressure(res, "p1"), 1e-9)
	assert.Equal(0.0, grazing.Pressure(res, "pen"))

	res = grazing.PaddockConsumption(flock(), paddocks(), date(7, 1), 0)
	require.Len(t, res, 2)
	assert.InDelta(4.9, res[0].TotalKgDay, 1e-9)
	assert.Equal("pen", res[1].PaddockID)
	assert.InDelta(40.0, res[1].KgHaDay, 1e-9)
}
