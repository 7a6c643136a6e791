// Package records provides the data model shared by the estimators and
// the pedigree analyzer: animals, weather, soils, NDVI composites,
// paddocks and the estimates computed from them.
//
// This package has no I/O dependencies. Records are immutable once they
// are built by an importer. Optional fields are pointers; accessor methods
// return documented defaults when a field is absent.
package records

import (
	"time"
)

// Day truncates t to a calendar day in UTC. All record dates are days.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// DateRange is an inclusive range of days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange creates a validated DateRange.
func NewDateRange(from, to time.Time) (DateRange, error) {
	res := DateRange{From: Day(from), To: Day(to)}
	if err := res.Validate(); err != nil {
		return DateRange{}, err
	}
	return res, nil
}

// Validate returns InvalidInputError if the range is malformed.
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return InvalidInputError("date range is missing a boundary")
	}
	if Day(r.From).After(Day(r.To)) {
		return InvalidInputError(
			"date range starts after it ends: %s > %s",
			r.From.Format(time.DateOnly), r.To.Format(time.DateOnly),
		)
	}
	return nil
}

// Contains reports whether the day of t lies inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.From)) && !d.After(Day(r.To))
}

// Days returns the number of days in the range.
func (r DateRange) Days() int {
	return int(Day(r.To).Sub(Day(r.From)).Hours()/24) + 1
}

// EachDay returns every day of the range in order.
func (r DateRange) EachDay() []time.Time {
	res := make([]time.Time, 0, r.Days())
	for d := Day(r.From); !d.After(Day(r.To)); d = d.AddDate(0, 0, 1) {
		res = append(res, d)
	}
	return res
}

func (r DateRange) String() string {
	return r.From.Format(time.DateOnly) + ".." + r.To.Format(time.DateOnly)
}
