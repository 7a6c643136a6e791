package records

import (
	"strings"
	"time"
)

// Season of the pasture year.
type Season int

const (
	UnknownSeason Season = iota
	Winter
	Spring
	Summer
	Fall
)

var seasonNames = map[Season]string{
	UnknownSeason: "unknown",
	Winter:        "winter",
	Spring:        "spring",
	Summer:        "summer",
	Fall:          "fall",
}

func (s Season) String() string {
	if res, ok := seasonNames[s]; ok {
		return res
	}
	return seasonNames[UnknownSeason]
}

// ParseSeason converts a season name to Season. "autumn" is accepted as
// an alias for fall.
func ParseSeason(s string) (Season, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "autumn" {
		return Fall, nil
	}
	for k, v := range seasonNames {
		if k != UnknownSeason && v == s {
			return k, nil
		}
	}
	return UnknownSeason, InvalidInputError("unknown season '%s'", s)
}

// Hemisphere determines how months map to seasons.
type Hemisphere string

const (
	North Hemisphere = "north"
	South Hemisphere = "south"
)

// SeasonOf returns the meteorological season of the day t.
// December to February is winter in the northern hemisphere.
func SeasonOf(t time.Time, h Hemisphere) Season {
	m := t.Month()
	if h == South {
		m = (m+5)%12 + 1
	}
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

func (s Season) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Season) UnmarshalText(b []byte) error {
	res, err := ParseSeason(string(b))
	if err != nil {
		return err
	}
	*s = res
	return nil
}
