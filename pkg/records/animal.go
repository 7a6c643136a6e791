package records

import (
	"slices"
	"time"
)

// ParentRole is the role of a parent reference.
type ParentRole string

const (
	Sire ParentRole = "sire"
	Dam  ParentRole = "dam"
)

// ParentRef points to a parent animal. AnimalID can be empty when the
// upstream record only carries a parent's identity (name or tags) and
// the parent is not registered in the herd.
type ParentRef struct {
	Role     ParentRole `json:"role"`
	AnimalID string     `json:"animalId"`
	Name     string     `json:"name,omitempty"`
	VID      string     `json:"vid,omitempty"`
	EID      string     `json:"eid,omitempty"`
}

// AnimalRecord is a livestock record as supplied by the livestock service.
type AnimalRecord struct {
	// AnimalID is unique across the herd.
	AnimalID string `json:"animalId"`

	// Identity.
	Name          string `json:"name,omitempty"`
	EID           string `json:"eid,omitempty"`
	VID           string `json:"vid,omitempty"`
	ManagementTag string `json:"managementTag,omitempty"`

	// Characteristics.
	Species   string     `json:"species,omitempty"`
	Breed     string     `json:"breed,omitempty"`
	Sex       string     `json:"sex,omitempty"`
	AgeClass  string     `json:"ageClass,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	BirthYear *int       `json:"birthYear,omitempty"`

	// State.
	OnFarm     bool       `json:"onFarm"`
	Status     string     `json:"status,omitempty"`
	LocationID *string    `json:"locationId,omitempty"`
	Mob        *string    `json:"mob,omitempty"`
	WeightKg   *float64   `json:"weightKg,omitempty"`
	WeanDate   *time.Time `json:"weanDate,omitempty"`

	// Parents lists sire and dam references.
	Parents []ParentRef `json:"parents,omitempty"`
}

// Herd indexes animal records by AnimalID.
type Herd map[string]AnimalRecord

// NewHerd builds a Herd from a list of records. When ids repeat, the
// last record wins.
func NewHerd(animals []AnimalRecord) Herd {
	res := make(Herd, len(animals))
	for _, v := range animals {
		if v.AnimalID == "" {
			continue
		}
		res[v.AnimalID] = v
	}
	return res
}

// IDs returns sorted animal ids of the herd.
func (h Herd) IDs() []string {
	res := make([]string, 0, len(h))
	for k := range h {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Label returns the most human-friendly identifier of the animal.
func (a AnimalRecord) Label() string {
	switch {
	case a.Name != "":
		return a.Name
	case a.VID != "":
		return a.VID
	case a.ManagementTag != "":
		return a.ManagementTag
	case a.EID != "":
		return a.EID
	default:
		return a.AnimalID
	}
}

// ParentIDs returns animal ids of sire and dam references. References
// without an id are left out, ids of parents missing from the herd are
// kept.
func (a AnimalRecord) ParentIDs() []string {
	var res []string
	for _, v := range a.Parents {
		if v.AnimalID != "" {
			res = append(res, v.AnimalID)
		}
	}
	return res
}

// Parent returns the first parent reference with the given role.
func (a AnimalRecord) Parent(role ParentRole) (ParentRef, bool) {
	for _, v := range a.Parents {
		if v.Role == role {
			return v, true
		}
	}
	return ParentRef{}, false
}

// Location returns the current paddock id, or an empty string.
func (a AnimalRecord) Location() string {
	if a.LocationID == nil {
		return ""
	}
	return *a.LocationID
}

// MobName returns the management group name, or an empty string.
func (a AnimalRecord) MobName() string {
	if a.Mob == nil {
		return ""
	}
	return *a.Mob
}

// AgeYears returns the age of the animal at the day t. It uses BirthDate
// when known, otherwise BirthYear. The second value is false when the age
// is unknown.
func (a AnimalRecord) AgeYears(t time.Time) (float64, bool) {
	if a.BirthDate != nil {
		return t.Sub(*a.BirthDate).Hours() / 24 / 365.25, true
	}
	if a.BirthYear != nil {
		return float64(t.Year() - *a.BirthYear), true
	}
	return 0, false
}
