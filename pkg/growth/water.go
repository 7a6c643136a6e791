package growth

import "github.com/skippy/farm/pkg/records"

// waterBalance is a single-bucket soil water model of the root zone.
// Rain fills the bucket; crop evapotranspiration and deep drainage empty
// it. Water above capacity runs off, except for soils that pond.
type waterBalance struct {
	capacity float64
	current  float64
	kc       float64
	profile  drainageProfile
}

// newWaterBalance starts the bucket half full.
func newWaterBalance(soil records.SoilProfile, kc float64) *waterBalance {
	capacity := soil.CapacityMM()
	return &waterBalance{
		capacity: capacity,
		current:  capacity * 0.5,
		kc:       kc,
		profile:  profileOf(soil.Drainage),
	}
}

func (w *waterBalance) fraction() float64 {
	if w.capacity <= 0 {
		return 0.5
	}
	return w.current / w.capacity
}

// update runs the balance for one day and returns actual
// evapotranspiration in mm.
func (w *waterBalance) update(rainMM, et0MM float64) float64 {
	w.current += rainMM

	potential := et0MM * w.kc
	var actual float64
	switch f := w.fraction(); {
	case f > MoistureStress:
		actual = potential
	case f > MoistureWilting:
		actual = potential * (f - MoistureWilting) /
			(MoistureStress - MoistureWilting)
	}
	w.current = max(0, w.current-actual)

	w.current -= w.current * w.profile.loss

	limit := w.capacity * (1 + w.profile.ponding)
	if w.current > limit {
		w.current = limit
	}
	return actual
}
