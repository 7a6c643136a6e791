// Package weather prepares daily weather for the growth model. It merges
// station and modeled series and projects weather past the forecast
// horizon from historical averages.
package weather

import (
	"slices"
	"time"

	"github.com/skippy/farm/pkg/records"
)

// Fallbacks for calendar days without history.
const (
	ClimateTempMeanC = 10.0
	ClimateTempMaxC  = 15.0
	ClimateTempMinC  = 5.0
	ClimatePrecipMM  = 2.0
	ClimateET0MM     = records.DefaultET0MM
)

// Reconcile merges a delayed station series with a near-real-time modeled
// series into one sample per day.
//
// Station precipitation always wins. When a station day lacks temperature
// or ET0 these come from the model day and the sample is tagged blended.
// Days only the model knows keep the model source. Days neither series
// knows stay missing. Duplicate days within a series return
// InvalidInputError.
func Reconcile(
	station, modeled []records.WeatherSample,
) ([]records.WeatherSample, error) {
	st, err := byDay(station)
	if err != nil {
		return nil, err
	}
	md, err := byDay(modeled)
	if err != nil {
		return nil, err
	}

	res := make([]records.WeatherSample, 0, max(len(st), len(md)))
	for day, s := range st {
		s.Date = day
		s.Source = records.SourceStation
		m, ok := md[day]
		if ok {
			s = blend(s, m)
		}
		res = append(res, s)
	}
	for day, m := range md {
		if _, ok := st[day]; ok {
			continue
		}
		m.Date = day
		if m.Source == "" {
			m.Source = records.SourceModel
		}
		res = append(res, m)
	}
	slices.SortFunc(res, func(a, b records.WeatherSample) int {
		return a.Date.Compare(b.Date)
	})
	return res, nil
}

func blend(s, m records.WeatherSample) records.WeatherSample {
	filled := false
	if s.TempMeanC == nil && m.TempMeanC != nil {
		s.TempMeanC, filled = m.TempMeanC, true
	}
	if s.TempMinC == nil && m.TempMinC != nil {
		s.TempMinC, filled = m.TempMinC, true
	}
	if s.TempMaxC == nil && m.TempMaxC != nil {
		s.TempMaxC, filled = m.TempMaxC, true
	}
	if s.ET0MM == nil && m.ET0MM != nil {
		s.ET0MM, filled = m.ET0MM, true
	}
	if filled {
		s.Source = records.SourceBlended
	}
	return s
}

func byDay(
	series []records.WeatherSample,
) (map[time.Time]records.WeatherSample, error) {
	res := make(map[time.Time]records.WeatherSample, len(series))
	for _, v := range series {
		day := records.Day(v.Date)
		if _, ok := res[day]; ok {
			return nil, records.InvalidInputError(
				"duplicate weather sample for %s", day.Format(time.DateOnly),
			)
		}
		res[day] = v
	}
	return res, nil
}

type climate struct {
	n                        int
	mean, tMin, tMax, precip float64
	et0                      float64
}

// Climatology projects weather for every day of rng as calendar day
// averages of history. Calendar days absent from history get the Climate*
// fallbacks. Samples are tagged climatology.
func Climatology(
	history []records.WeatherSample,
	rng records.DateRange,
) ([]records.WeatherSample, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	cal := make(map[int]*climate)
	key := func(t time.Time) int { return int(t.Month())*100 + t.Day() }
	for _, v := range history {
		mean, ok := v.MeanTemp()
		if !ok {
			continue
		}
		d := key(records.Day(v.Date))
		c, ok := cal[d]
		if !ok {
			c = &climate{}
			cal[d] = c
		}
		c.n++
		c.mean += mean
		c.tMin += valueOr(v.TempMinC, ClimateTempMinC)
		c.tMax += valueOr(v.TempMaxC, ClimateTempMaxC)
		c.precip += v.Rain()
		c.et0 += v.ET0()
	}

	days := rng.EachDay()
	res := make([]records.WeatherSample, len(days))
	for i, day := range days {
		s := records.WeatherSample{
			Date:      day,
			PrecipMM:  ClimatePrecipMM,
			TempMeanC: records.Float(ClimateTempMeanC),
			TempMinC:  records.Float(ClimateTempMinC),
			TempMaxC:  records.Float(ClimateTempMaxC),
			ET0MM:     records.Float(ClimateET0MM),
			Source:    records.SourceClimatology,
		}
		if c, ok := cal[key(day)]; ok {
			n := float64(c.n)
			s.PrecipMM = c.precip / n
			s.TempMeanC = records.Float(c.mean / n)
			s.TempMinC = records.Float(c.tMin / n)
			s.TempMaxC = records.Float(c.tMax / n)
			s.ET0MM = records.Float(c.et0 / n)
		}
		res[i] = s
	}
	return res, nil
}

// Extend appends climatology to projected weather so that it covers days
// up to the given day. Projected samples are kept as they are. Climatology
// never starts on or before the day after, so days up to it stay
// uncovered when history ends early.
func Extend(
	history, projected []records.WeatherSample,
	after, to time.Time,
) ([]records.WeatherSample, error) {
	res := slices.Clone(projected)
	var last time.Time
	for _, v := range projected {
		if d := records.Day(v.Date); d.After(last) {
			last = d
		}
	}
	if last.IsZero() {
		for _, v := range history {
			if d := records.Day(v.Date); d.After(last) {
				last = d
			}
		}
	}
	if after = records.Day(after); !last.IsZero() && last.Before(after) {
		last = after
	}
	from := last.AddDate(0, 0, 1)
	to = records.Day(to)
	if last.IsZero() || to.Before(from) {
		return res, nil
	}
	clim, err := Climatology(history, records.DateRange{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return append(res, clim...), nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// CompositeWindow returns the length in days of the NDVI composite for a
// target day. Cloudy winters need long windows, clear summers short ones.
func CompositeWindow(t time.Time, h records.Hemisphere) int {
	m := int(t.Month())
	if h == records.South {
		m = (m+5)%12 + 1
	}
	switch m {
	case 6, 7, 8, 9:
		return 21
	case 11, 12, 1, 2:
		return 45
	default:
		return 30
	}
}

// MinCloudFreePct returns the minimum share of cloud-free pixels accepted
// for a composite window.
func MinCloudFreePct(window int) float64 {
	switch {
	case window <= 21:
		return 30
	case window <= 30:
		return 20
	default:
		return 10
	}
}
