package records

import (
	"time"
)

// GrowthEstimate is a daily pasture growth estimate of a paddock.
type GrowthEstimate struct {
	PaddockID string    `json:"paddockId"`
	Date      time.Time `json:"date"`

	// GrowthKgHaDay is dry matter growth in kg/ha/day.
	GrowthKgHaDay float64 `json:"growthKgHaDay"`

	TempFactor     float64 `json:"tempFactor"`
	MoistureFactor float64 `json:"moistureFactor"`
	SeasonalFactor float64 `json:"seasonalFactor"`
	SoilFactor     float64 `json:"soilFactor"`

	// MoistureFraction is soil water as a fraction of capacity after the
	// day's water balance.
	MoistureFraction float64 `json:"moistureFraction"`

	Season   Season   `json:"season"`
	Forecast bool     `json:"forecast"`
	Notes    []string `json:"notes,omitempty"`
}

// GrowthSummary aggregates daily estimates of one paddock.
type GrowthSummary struct {
	PaddockID    string
	Days         int
	TotalKgHa    float64
	AvgKgHaDay   float64
	MinKgHaDay   float64
	MaxKgHaDay   float64
	From, To     time.Time
	ForecastDays int
}

// AncestorPath is a route from an animal to a common ancestor.
type AncestorPath []string

// SharedAncestry describes how a common ancestor links two animals.
type SharedAncestry struct {
	AncestorID string
	// PathA leads from the first animal to the ancestor, both included.
	PathA AncestorPath
	// PathB leads from the second animal to the ancestor, both included.
	PathB AncestorPath
	// AncestorInbreeding is the inbreeding coefficient of the ancestor.
	AncestorInbreeding float64
	// Contribution of this ancestor to the coefficient.
	Contribution float64
}

// InbreedingResult is the relationship coefficient of two animals.
type InbreedingResult struct {
	IDA         string
	IDB         string
	Coefficient float64
	Paths       []SharedAncestry
}
