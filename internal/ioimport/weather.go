package ioimport

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/skippy/farm/pkg/records"
)

const inchToMM = 25.4

type openMeteoJSON struct {
	Daily struct {
		Time     []stamp    `json:"time"`
		TempMax  []*float64 `json:"temperature_2m_max"`
		TempMin  []*float64 `json:"temperature_2m_min"`
		TempMean []*float64 `json:"temperature_2m_mean"`
		Precip   []*float64 `json:"precipitation_sum"`
		ET0      []*float64 `json:"et0_fao_evapotranspiration"`
	} `json:"daily"`
}

// decodeOpenMeteo reads the columnar daily block of an Open-Meteo
// response. Missing precipitation is read as zero.
func decodeOpenMeteo(data []byte) ([]records.WeatherSample, error) {
	var in openMeteoJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	d := in.Daily
	res := make([]records.WeatherSample, 0, len(d.Time))
	for i, t := range d.Time {
		if t.IsZero() {
			continue
		}
		w := records.WeatherSample{
			Date:      records.Day(t.Time),
			TempMaxC:  at(d.TempMax, i),
			TempMinC:  at(d.TempMin, i),
			TempMeanC: at(d.TempMean, i),
			ET0MM:     at(d.ET0, i),
			Source:    records.SourceModel,
		}
		if p := at(d.Precip, i); p != nil {
			w.PrecipMM = *p
		}
		res = append(res, w)
	}
	return res, nil
}

func at(col []*float64, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

// number is a JSON number that may arrive quoted and padded.
type number struct {
	v  float64
	ok bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	n.v, n.ok = v, true
	return nil
}

func (n number) ptr() *float64 {
	if !n.ok {
		return nil
	}
	return records.Float(n.v)
}

type nceiJSON struct {
	Date stamp  `json:"DATE"`
	PRCP number `json:"PRCP"`
	TMAX number `json:"TMAX"`
	TMIN number `json:"TMIN"`
}

// decodeNCEI reads station daily summaries in standard units (inches and
// Fahrenheit) and converts them to millimetres and Celsius.
func decodeNCEI(data []byte) ([]records.WeatherSample, error) {
	list, err := decodeList[nceiJSON](data, "results")
	if err != nil {
		return nil, err
	}
	res := make([]records.WeatherSample, 0, len(list))
	for _, v := range list {
		if v.Date.IsZero() {
			continue
		}
		w := records.WeatherSample{
			Date:     records.Day(v.Date.Time),
			PrecipMM: v.PRCP.v * inchToMM,
			TempMaxC: celsius(v.TMAX),
			TempMinC: celsius(v.TMIN),
			Source:   records.SourceStation,
		}
		res = append(res, w)
	}
	return res, nil
}

func celsius(f number) *float64 {
	if !f.ok {
		return nil
	}
	return records.Float((f.v - 32) * 5 / 9)
}
