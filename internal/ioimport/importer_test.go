package ioimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/skippy/farm/internal/ioimport"
	"github.com/skippy/farm/internal/iostore"
	"github.com/skippy/farm/pkg/errcode"
	"github.com/skippy/farm/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animalsJSON = `{"data":{"animals":[
{"animalId":"a1",
 "identity":{"name":"Daisy","vid":"V1"},
 "characteristics":{"birthDate":1677628800000,"ageClass":"ewe",
   "speciesCommonName":"Sheep","breedAssessed":{"id":"x"}},
 "state":{"onFarm":true,"currentLocationId":"p1"},
 "managementGroup":{"name":"Ewes"},
 "records":[
   {"recordType":"weigh","observationDate":1700000000000,
    "weight":{"value":150,"unit":"lb"}},
   {"recordType":"weigh","observationDate":1600000000000,
    "weight":{"value":60,"unit":"kg"}}]},
{"animalId":"a2",
 "characteristics":{"birthDate":"2024-03-01T00:00:00Z","ageClass":"ewe_lamb"},
 "state":{"onFarm":false,"fate":"sold"},
 "parentage":{
   "sires":[{"parentAnimalId":"","parentAnimalIdentity":{"name":"Big Ram"}}],
   "dams":[{"parentAnimalId":"a1","parentAnimalIdentity":{"name":"Daisy"}}]},
 "records":[{"recordType":"wean","observationDate":"2024-07-01"}]},
{"identity":{"name":"no id"}}
]}}`

func setup(t *testing.T) (*ioimport.Importer, *iostore.Store, string) {
	dir := t.TempDir()
	s, err := iostore.Open(filepath.Join(dir, "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return ioimport.New(s), s, dir
}

func write(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestImportAnimals(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	im, s, dir := setup(t)
	path := write(t, dir, "animals.json", animalsJSON)

	res, err := im.Import(ctx, path, "")
	require.NoError(t, err)
	assert.Equal(ioimport.FormatAnimals, res.Format)
	assert.Equal(2, res.Records)

	herd, err := s.Herd(ctx)
	require.NoError(t, err)
	require.Len(t, herd, 2)

	a1 := herd["a1"]
	assert.Equal("Daisy", a1.Label())
	assert.Equal("Sheep", a1.Species)
	assert.Equal("", a1.Breed)
	assert.Equal("onFarm", a1.Status)
	assert.Equal("p1", a1.Location())
	assert.Equal("Ewes", a1.MobName())
	require.NotNil(t, a1.BirthDate)
	assert.True(day(2023, 3, 1).Equal(*a1.BirthDate))
	require.NotNil(t, a1.WeightKg)
	assert.InDelta(68.04, *a1.WeightKg, 0.01)

	a2 := herd["a2"]
	assert.Equal("sold", a2.Status)
	assert.False(a2.OnFarm)
	assert.Equal([]string{"a1"}, a2.ParentIDs())
	sire, ok := a2.Parent(records.Sire)
	assert.True(ok)
	assert.Equal("Big Ram", sire.Name)
	require.NotNil(t, a2.WeanDate)
	assert.True(day(2024, 7, 1).Equal(*a2.WeanDate))
	assert.Nil(a2.WeightKg)
}

func TestImportFields(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	im, s, dir := setup(t)

	path := write(t, dir, "fields.json", `[
{"id":"p1","name":"Home","totalArea":2.5,
 "geometry":{"type":"Polygon","coordinates":[[[0,0],[0.001,0],[0.001,0.001],[0,0]]]}},
{"id":"p2","name":"Creek","geometry":null},
{"name":"orphan"}]`)
	res, err := im.Import(ctx, path, ioimport.FormatFields)
	require.NoError(t, err)
	assert.Equal(2, res.Records)

	paddocks, err := s.Paddocks(ctx)
	require.NoError(t, err)
	require.Len(t, paddocks, 2)
	assert.Equal(2.5, paddocks[0].Area())
	_, err = paddocks[0].Geometry()
	assert.NoError(err)
	assert.Empty(paddocks[1].Boundary)

	path = write(t, dir, "boundaries.geojson", `{"type":"FeatureCollection",
"features":[{"type":"Feature",
 "properties":{"id":"f1","name":"North","totalArea":1.2},
 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`)
	res, err = im.Import(ctx, path, ioimport.FormatFields)
	require.NoError(t, err)
	assert.Equal(1, res.Records)
	paddocks, err = s.Paddocks(ctx)
	require.NoError(t, err)
	require.Len(t, paddocks, 3)
	assert.Equal("f1", paddocks[0].ID)
	assert.Equal("North", paddocks[0].Name)
	_, err = paddocks[0].Centroid()
	assert.NoError(err)
}

func TestImportSoilsAndNDVI(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	im, s, dir := setup(t)

	soils := write(t, dir, "paddock_soils.json", `{"paddocks":{
"Home":{"paddock_id":"p1","soil":{"drainage":"Poorly drained","awc_cm_cm":0.18}},
"Nowhere":{"soil":{}}}}`)
	ndvi := write(t, dir, "ndvi_historical.json", `{"paddocks":{"p1":{
"tree_cover":0.1,
"history":[
 {"date":"2024-05-01","ndvi_mean":0.55,"ndvi_stddev":0.05,
  "pixel_count":120,"cloud_free_pct":80},
 {"date":"2024-04-01","ndvi_mean":null,"pixel_count":0}]}}}`)

	res, err := im.ImportAll(ctx, []string{soils, ndvi}, "")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(1, res[0].Records)
	assert.Equal(1, res[1].Records)

	profiles, err := s.Soils(ctx)
	require.NoError(t, err)
	assert.Equal(records.PoorlyDrained, profiles["p1"].Drainage)
	assert.Equal(0.18, profiles["p1"].AWCOrDefault())

	series, err := s.NDVI(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(0.55, series[0].NDVI)
	assert.Equal(0.1, series[0].TreeCover)
	assert.Equal(0.05, series[0].Spread())
	assert.True(day(2024, 5, 1).Equal(series[0].Date))
}

func TestImportWeather(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	im, s, dir := setup(t)

	model := write(t, dir, "open_meteo.json", `{"daily":{
"time":["2024-04-01","2024-04-02"],
"temperature_2m_max":[20,null],
"temperature_2m_min":[10,8],
"precipitation_sum":[1.2,null],
"et0_fao_evapotranspiration":[3.1,2.0]}}`)
	station := write(t, dir, "ncei.json", `[
{"DATE":"2024-04-01","STATION":"X","PRCP":" 0.50","TMAX":"68","TMIN":"50"},
{"DATE":"2024-04-02","STATION":"X","PRCP":"0.00"}]`)

	_, err := im.ImportAll(ctx, []string{model, station}, "")
	require.NoError(t, err)

	m, err := s.Weather(ctx, records.SourceModel)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(1.2, m[0].PrecipMM)
	temp, ok := m[0].MeanTemp()
	assert.True(ok)
	assert.Equal(15.0, temp)
	assert.Equal(3.1, m[0].ET0())
	assert.Equal(0.0, m[1].PrecipMM)
	assert.Nil(m[1].TempMaxC)

	st, err := s.Weather(ctx, records.SourceStation)
	require.NoError(t, err)
	require.Len(t, st, 2)
	assert.InDelta(12.7, st[0].PrecipMM, 1e-9)
	assert.InDelta(20.0, *st[0].TempMaxC, 1e-9)
	assert.InDelta(10.0, *st[0].TempMinC, 1e-9)
	assert.Nil(st[1].TempMaxC)
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	im, _, dir := setup(t)

	tests := []struct {
		msg    string
		path   string
		format ioimport.Format
		code   gn.ErrorCode
	}{
		{"unknown name", write(t, dir, "x.csv", "a,b"), "", errcode.ImportKindError},
		{"bad json", write(t, dir, "bad.json", "{"), ioimport.FormatAnimals,
			errcode.ImportDecodeError},
		{"wrong shape", write(t, dir, "shape.json", `{"foo":[]}`),
			ioimport.FormatAnimals, errcode.ImportDecodeError},
		{"empty", write(t, dir, "empty.json", "[]"), ioimport.FormatAnimals,
			errcode.ImportEmptyError},
		{"missing", filepath.Join(dir, "none.json"), ioimport.FormatNDVI,
			errcode.ReadFileError},
	}

	for _, v := range tests {
		_, err := im.Import(ctx, v.path, v.format)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestParseFormat(t *testing.T) {
	assert := assert.New(t)
	f, err := ioimport.ParseFormat(" NCEI ")
	require.NoError(t, err)
	assert.Equal(ioimport.FormatNCEI, f)

	_, err = ioimport.ParseFormat("csv")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.ImportKindError, gnErr.Code)
	assert.Contains(gnErr.Err.Error(), "csv")

	f, err = ioimport.Detect("/tmp/export/Fields.json")
	require.NoError(t, err)
	assert.Equal(ioimport.FormatFields, f)
}
