package records

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Paddock is a field of the farm.
type Paddock struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	AreaHa float64 `json:"areaHa"`

	// Boundary is a GeoJSON geometry in WGS84 coordinates, if known.
	Boundary []byte `json:"boundary,omitempty"`
}

// Geometry decodes the paddock boundary.
func (p Paddock) Geometry() (orb.Geometry, error) {
	if len(p.Boundary) == 0 {
		return nil, InvalidInputError("paddock '%s' has no boundary", p.ID)
	}
	g, err := geojson.UnmarshalGeometry(p.Boundary)
	if err != nil {
		return nil, InvalidInputError(
			"paddock '%s' has malformed boundary: %s", p.ID, err,
		)
	}
	return g.Geometry(), nil
}

// Centroid returns the center of the paddock boundary as lon/lat.
func (p Paddock) Centroid() (orb.Point, error) {
	g, err := p.Geometry()
	if err != nil {
		return orb.Point{}, err
	}
	c, _ := planar.CentroidArea(g)
	return c, nil
}

// Area returns paddock area in hectares. AreaHa is preferred; the
// boundary is used when AreaHa is not set.
func (p Paddock) Area() float64 {
	if p.AreaHa > 0 {
		return p.AreaHa
	}
	g, err := p.Geometry()
	if err != nil {
		return 0
	}
	return geo.Area(g) / 10_000
}
