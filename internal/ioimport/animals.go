package ioimport

import (
	"slices"
	"strings"
	"time"

	"github.com/gnames/gnlib"
	"github.com/skippy/farm/pkg/records"
)

const lbToKg = 0.45359237

type animalJSON struct {
	AnimalID string `json:"animalId"`
	Identity struct {
		Name          text `json:"name"`
		EID           text `json:"eid"`
		VID           text `json:"vid"`
		ManagementTag text `json:"managementTag"`
	} `json:"identity"`
	Characteristics struct {
		BirthDate         stamp `json:"birthDate"`
		BirthYear         *int  `json:"birthYear"`
		BreedAssessed     text  `json:"breedAssessed"`
		Sex               text  `json:"sex"`
		SpeciesCommonName text  `json:"speciesCommonName"`
		AgeClass          text  `json:"ageClass"`
	} `json:"characteristics"`
	State struct {
		OnFarm            bool    `json:"onFarm"`
		CurrentLocationID *string `json:"currentLocationId"`
		Fate              text    `json:"fate"`
	} `json:"state"`
	Parentage struct {
		Sires []parentJSON `json:"sires"`
		Dams  []parentJSON `json:"dams"`
	} `json:"parentage"`
	ManagementGroup *struct {
		Name text `json:"name"`
	} `json:"managementGroup"`
	Records []recordJSON `json:"records"`
}

type parentJSON struct {
	ParentAnimalID       string `json:"parentAnimalId"`
	ParentAnimalIdentity struct {
		Name text `json:"name"`
		VID  text `json:"vid"`
		EID  text `json:"eid"`
	} `json:"parentAnimalIdentity"`
}

type recordJSON struct {
	RecordType      string `json:"recordType"`
	ObservationDate stamp  `json:"observationDate"`
	Weight          *struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	} `json:"weight"`
}

func decodeAnimals(data []byte) ([]records.AnimalRecord, error) {
	list, err := decodeList[animalJSON](data, "animals")
	if err != nil {
		return nil, err
	}
	res := make([]records.AnimalRecord, 0, len(list))
	for _, v := range list {
		if v.AnimalID == "" {
			continue
		}
		res = append(res, v.record())
	}
	return res, nil
}

func (a animalJSON) record() records.AnimalRecord {
	c := a.Characteristics
	res := records.AnimalRecord{
		AnimalID:      a.AnimalID,
		Name:          clean(a.Identity.Name),
		EID:           clean(a.Identity.EID),
		VID:           clean(a.Identity.VID),
		ManagementTag: clean(a.Identity.ManagementTag),
		Species:       clean(c.SpeciesCommonName),
		Breed:         clean(c.BreedAssessed),
		Sex:           clean(c.Sex),
		AgeClass:      clean(c.AgeClass),
		BirthDate:     c.BirthDate.ptr(),
		BirthYear:     c.BirthYear,
		OnFarm:        a.State.OnFarm,
		LocationID:    a.State.CurrentLocationID,
	}
	if res.OnFarm {
		res.Status = "onFarm"
	} else {
		res.Status = clean(a.State.Fate)
	}
	if a.ManagementGroup != nil && a.ManagementGroup.Name != "" {
		mob := clean(a.ManagementGroup.Name)
		res.Mob = &mob
	}
	if len(a.Parentage.Sires) > 0 {
		res.Parents = append(res.Parents, a.Parentage.Sires[0].ref(records.Sire))
	}
	if len(a.Parentage.Dams) > 0 {
		res.Parents = append(res.Parents, a.Parentage.Dams[0].ref(records.Dam))
	}
	res.WeightKg = latestWeight(a.Records)
	if t, ok := latest(a.Records, "wean"); ok {
		res.WeanDate = &t
	}
	return res
}

func (p parentJSON) ref(role records.ParentRole) records.ParentRef {
	return records.ParentRef{
		Role:     role,
		AnimalID: p.ParentAnimalID,
		Name:     clean(p.ParentAnimalIdentity.Name),
		VID:      clean(p.ParentAnimalIdentity.VID),
		EID:      clean(p.ParentAnimalIdentity.EID),
	}
}

// latestWeight returns the most recent weigh record in kg.
func latestWeight(recs []recordJSON) *float64 {
	weighs := slices.DeleteFunc(slices.Clone(recs), func(r recordJSON) bool {
		return r.RecordType != "weigh" || r.Weight == nil || r.Weight.Value <= 0
	})
	if len(weighs) == 0 {
		return nil
	}
	last := slices.MaxFunc(weighs, func(a, b recordJSON) int {
		return a.ObservationDate.Compare(b.ObservationDate.Time)
	})
	kg := last.Weight.Value
	if u := strings.ToLower(last.Weight.Unit); u == "lb" || u == "lbs" {
		kg *= lbToKg
	}
	return &kg
}

func latest(recs []recordJSON, recordType string) (time.Time, bool) {
	var res time.Time
	for _, v := range recs {
		if v.RecordType == recordType && v.ObservationDate.After(res) {
			res = v.ObservationDate.Time
		}
	}
	return res, !res.IsZero()
}

func clean(t text) string {
	return strings.TrimSpace(gnlib.FixUtf8(string(t)))
}
