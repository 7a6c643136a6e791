// Package grazing estimates how much dry matter animals eat and how hard
// each paddock is grazed. Paddock consumption per hectare is the grazing
// pressure used to correct NDVI based feed on offer.
package grazing

import (
	"slices"
	"strings"
	"time"

	"github.com/skippy/farm/pkg/records"
)

// DefaultWeaningDays is the age at which a lamb without a wean record is
// assumed weaned.
const DefaultWeaningDays = 120

// DefaultMinAreaHa excludes pens and yards from consumption.
const DefaultMinAreaHa = 0.2

// defaultWeights are body weights in kg by age class, used without a weigh
// record.
var defaultWeights = map[string]float64{
	"ewe":           140,
	"ram":           160,
	"maiden_ewe":    130,
	"wether":        150,
	"ewe_hogget":    110,
	"ram_hogget":    100,
	"wether_hogget": 110,
	"ewe_weaner":    70,
	"ram_weaner":    65,
	"wether_weaner": 65,
	"ewe_lamb":      35,
	"ram_lamb":      35,
	"wether_lamb":   35,
	"lamb":          30,
}

// intakeShare is daily dry matter intake as a share of body weight.
// Growing animals eat more per kg.
var intakeShare = map[string]float64{
	"ewe":           0.025,
	"ram":           0.025,
	"maiden_ewe":    0.028,
	"wether":        0.023,
	"ewe_hogget":    0.032,
	"ram_hogget":    0.032,
	"wether_hogget": 0.030,
	"ewe_weaner":    0.040,
	"ram_weaner":    0.040,
	"wether_weaner": 0.038,
	"ewe_lamb":      0.045,
	"ram_lamb":      0.045,
	"wether_lamb":   0.045,
	"lamb":          0.045,
}

// lactation multiplies intake of a dam by the number of lambs she nurses.
var lactation = [...]float64{1.0, 1.7, 2.3, 2.9}

// Intake is the daily dry matter intake of one animal.
type Intake struct {
	AnimalID string
	Label    string
	AgeClass string
	WeightKg float64
	// Weighed is false when WeightKg is the age class default.
	Weighed      bool
	LambsNursing int
	BaseKg       float64
	Multiplier   float64
	TotalKg      float64
	PaddockID    string
}

// Consumption is the daily dry matter eaten in a paddock.
type Consumption struct {
	PaddockID  string
	Name       string
	AreaHa     float64
	Animals    int
	TotalKgDay float64
	// KgHaDay is the grazing pressure of the paddock.
	KgHaDay float64
	Labels  []string
}

// AnimalIntake returns intake of an animal nursing the given number of
// lambs.
func AnimalIntake(a records.AnimalRecord, lambs int) Intake {
	class := strings.ToLower(a.AgeClass)
	if class == "" {
		class = "ewe"
	}
	res := Intake{
		AnimalID:     a.AnimalID,
		Label:        a.Label(),
		AgeClass:     class,
		LambsNursing: max(0, lambs),
		PaddockID:    a.Location(),
	}

	if a.WeightKg != nil && *a.WeightKg > 0 {
		res.WeightKg, res.Weighed = *a.WeightKg, true
	} else if w, ok := defaultWeights[class]; ok {
		res.WeightKg = w
	} else {
		res.WeightKg = defaultWeights["ewe"]
	}

	share, ok := intakeShare[class]
	if !ok {
		share = intakeShare["ewe"]
	}
	res.BaseKg = res.WeightKg * share
	res.Multiplier = lactation[min(res.LambsNursing, len(lactation)-1)]
	res.TotalKg = res.BaseKg * res.Multiplier
	return res
}

// WeanDate returns the day a lamb is weaned: the recorded wean date, or
// birth plus DefaultWeaningDays. The second value is false when neither
// is known.
func WeanDate(a records.AnimalRecord) (time.Time, bool) {
	if a.WeanDate != nil {
		return records.Day(*a.WeanDate), true
	}
	if a.BirthDate != nil {
		return records.Day(*a.BirthDate).AddDate(0, 0, DefaultWeaningDays), true
	}
	return time.Time{}, false
}

// NursingLambs maps dam ids to ids of on-farm lambs still nursing at day.
// Lambs without birth or wean dates are not counted.
func NursingLambs(herd records.Herd, day time.Time) map[string][]string {
	day = records.Day(day)
	res := make(map[string][]string)
	for _, id := range herd.IDs() {
		a := herd[id]
		if !a.OnFarm || !isYoung(a.AgeClass) {
			continue
		}
		dam, ok := a.Parent(records.Dam)
		if !ok || dam.AnimalID == "" {
			continue
		}
		wean, ok := WeanDate(a)
		if !ok || !day.Before(wean) {
			continue
		}
		res[dam.AnimalID] = append(res[dam.AnimalID], id)
	}
	return res
}

func isYoung(class string) bool {
	class = strings.ToLower(class)
	return strings.Contains(class, "lamb") || strings.Contains(class, "weaner")
}

// PaddockConsumption sums intake of on-farm animals by their current
// paddock at day. Animals without a location are ignored, and so are
// paddocks smaller than minAreaHa or missing from paddocks. Results are
// ordered by paddock id.
func PaddockConsumption(
	herd records.Herd,
	paddocks []records.Paddock,
	day time.Time,
	minAreaHa float64,
) []Consumption {
	nursing := NursingLambs(herd, day)
	byID := make(map[string]records.Paddock, len(paddocks))
	for _, p := range paddocks {
		byID[p.ID] = p
	}

	acc := make(map[string]*Consumption)
	for _, id := range herd.IDs() {
		a := herd[id]
		if !a.OnFarm || a.Location() == "" {
			continue
		}
		p, ok := byID[a.Location()]
		if !ok {
			continue
		}
		c, ok := acc[p.ID]
		if !ok {
			c = &Consumption{PaddockID: p.ID, Name: p.Name, AreaHa: p.Area()}
			acc[p.ID] = c
		}
		in := AnimalIntake(a, len(nursing[id]))
		c.Animals++
		c.TotalKgDay += in.TotalKg
		c.Labels = append(c.Labels, in.Label)
	}

	var res []Consumption
	for _, c := range acc {
		if c.AreaHa < minAreaHa || c.AreaHa <= 0 {
			continue
		}
		c.KgHaDay = c.TotalKgDay / c.AreaHa
		res = append(res, *c)
	}
	slices.SortFunc(res, func(a, b Consumption) int {
		return strings.Compare(a.PaddockID, b.PaddockID)
	})
	return res
}

// Pressure returns grazing pressure of a paddock in kg DM/ha/day, zero for
// paddocks without animals.
func Pressure(consumption []Consumption, paddockID string) float64 {
	for _, v := range consumption {
		if v.PaddockID == paddockID {
			return v.KgHaDay
		}
	}
	return 0
}
