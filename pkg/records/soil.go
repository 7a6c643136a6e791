package records

import "strings"

// Drainage is a USDA soil drainage class.
type Drainage string

const (
	ExcessivelyDrained         Drainage = "Excessively drained"
	SomewhatExcessivelyDrained Drainage = "Somewhat excessively drained"
	WellDrained                Drainage = "Well drained"
	ModeratelyWellDrained      Drainage = "Moderately well drained"
	SomewhatPoorlyDrained      Drainage = "Somewhat poorly drained"
	PoorlyDrained              Drainage = "Poorly drained"
	VeryPoorlyDrained          Drainage = "Very poorly drained"
)

var drainageClasses = []Drainage{
	ExcessivelyDrained,
	SomewhatExcessivelyDrained,
	WellDrained,
	ModeratelyWellDrained,
	SomewhatPoorlyDrained,
	PoorlyDrained,
	VeryPoorlyDrained,
}

// ParseDrainage normalizes a drainage class name. Unknown names return an
// empty Drainage, which estimators treat as well drained.
func ParseDrainage(s string) Drainage {
	s = strings.TrimSpace(s)
	for _, v := range drainageClasses {
		if strings.EqualFold(string(v), s) {
			return v
		}
	}
	return ""
}

const (
	// DefaultAWC is available water capacity (cm/cm) for paddocks
	// without soil survey data.
	DefaultAWC = 0.15
	// DefaultRootDepthMM is the effective rooting depth of pasture.
	DefaultRootDepthMM = 300.0
)

// SoilProfile is static soil reference data of a paddock.
type SoilProfile struct {
	PaddockID        string   `json:"paddockId"`
	Drainage         Drainage `json:"drainage,omitempty"`
	AWC              *float64 `json:"awcCmCm,omitempty"`
	OrganicMatterPct *float64 `json:"organicMatterPct,omitempty"`
	RootDepthMM      *float64 `json:"rootDepthMm,omitempty"`
}

// AWCOrDefault returns available water capacity in cm/cm.
func (s SoilProfile) AWCOrDefault() float64 {
	if s.AWC == nil || *s.AWC <= 0 {
		return DefaultAWC
	}
	return *s.AWC
}

// RootDepth returns effective rooting depth in mm.
func (s SoilProfile) RootDepth() float64 {
	if s.RootDepthMM == nil || *s.RootDepthMM <= 0 {
		return DefaultRootDepthMM
	}
	return *s.RootDepthMM
}

// CapacityMM returns the plant available water the root zone can hold.
func (s SoilProfile) CapacityMM() float64 {
	return s.AWCOrDefault() * s.RootDepth()
}

// OrganicMatter returns organic matter percent, zero when unknown.
func (s SoilProfile) OrganicMatter() float64 {
	if s.OrganicMatterPct == nil {
		return 0
	}
	return *s.OrganicMatterPct
}
