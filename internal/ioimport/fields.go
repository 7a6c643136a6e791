package ioimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/skippy/farm/pkg/records"
)

type fieldJSON struct {
	ID           string          `json:"id"`
	Name         text            `json:"name"`
	TotalArea    *float64        `json:"totalArea"`
	GrazableArea *float64        `json:"grazableArea"`
	Geometry     json.RawMessage `json:"geometry"`
}

// decodeFields reads paddocks from a livestock API field list or from a
// GeoJSON FeatureCollection with id, name and totalArea properties.
func decodeFields(data []byte) ([]records.Paddock, error) {
	if bytes.Contains(data, []byte(`"FeatureCollection"`)) {
		return decodeFeatures(data)
	}
	list, err := decodeList[fieldJSON](data, "fields")
	if err != nil {
		return nil, err
	}
	res := make([]records.Paddock, 0, len(list))
	for _, v := range list {
		if v.ID == "" {
			continue
		}
		p := records.Paddock{ID: v.ID, Name: clean(v.Name)}
		if v.TotalArea != nil {
			p.AreaHa = *v.TotalArea
		}
		if g := bytes.TrimSpace(v.Geometry); len(g) > 0 && !bytes.Equal(g, []byte("null")) {
			p.Boundary = g
		}
		res = append(res, p)
	}
	return res, nil
}

func decodeFeatures(data []byte) ([]records.Paddock, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	res := make([]records.Paddock, 0, len(fc.Features))
	for _, f := range fc.Features {
		id := f.Properties.MustString("id", "")
		if id == "" && f.ID != nil {
			id = fmt.Sprint(f.ID)
		}
		if id == "" {
			continue
		}
		boundary, err := geojson.NewGeometry(f.Geometry).MarshalJSON()
		if err != nil {
			return nil, err
		}
		res = append(res, records.Paddock{
			ID:       id,
			Name:     clean(text(f.Properties.MustString("name", ""))),
			AreaHa:   f.Properties.MustFloat64("totalArea", 0),
			Boundary: boundary,
		})
	}
	return res, nil
}

type soilsJSON struct {
	Paddocks map[string]struct {
		PaddockID string `json:"paddock_id"`
		Soil      struct {
			Drainage         text     `json:"drainage"`
			AWC              *float64 `json:"awc_cm_cm"`
			OrganicMatterPct *float64 `json:"organic_matter_pct"`
			RootDepthMM      *float64 `json:"root_depth_mm"`
		} `json:"soil"`
	} `json:"paddocks"`
}

func decodeSoils(data []byte) ([]records.SoilProfile, error) {
	var in soilsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	res := make([]records.SoilProfile, 0, len(in.Paddocks))
	for _, v := range in.Paddocks {
		if v.PaddockID == "" {
			continue
		}
		res = append(res, records.SoilProfile{
			PaddockID:        v.PaddockID,
			Drainage:         records.ParseDrainage(string(v.Soil.Drainage)),
			AWC:              v.Soil.AWC,
			OrganicMatterPct: v.Soil.OrganicMatterPct,
			RootDepthMM:      v.Soil.RootDepthMM,
		})
	}
	slices.SortFunc(res, func(a, b records.SoilProfile) int {
		return strings.Compare(a.PaddockID, b.PaddockID)
	})
	return res, nil
}

type ndviJSON struct {
	Paddocks map[string]struct {
		TreeCover *float64 `json:"tree_cover"`
		History   []struct {
			Date         stamp    `json:"date"`
			Mean         *float64 `json:"ndvi_mean"`
			StdDev       *float64 `json:"ndvi_stddev"`
			PixelCount   *int     `json:"pixel_count"`
			CloudFreePct *float64 `json:"cloud_free_pct"`
		} `json:"history"`
	} `json:"paddocks"`
}

// decodeNDVI reads NDVI history. Months without a cloud-free composite
// have no mean and are skipped.
func decodeNDVI(data []byte) ([]records.NDVISample, error) {
	var in ndviJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	var res []records.NDVISample
	for id, p := range in.Paddocks {
		for _, h := range p.History {
			if h.Mean == nil || h.Date.IsZero() {
				continue
			}
			s := records.NDVISample{
				PaddockID:    id,
				Date:         records.Day(h.Date.Time),
				NDVI:         *h.Mean,
				StdDev:       h.StdDev,
				PixelCount:   h.PixelCount,
				CloudFreePct: h.CloudFreePct,
			}
			if p.TreeCover != nil {
				s.TreeCover = *p.TreeCover
			}
			res = append(res, s)
		}
	}
	slices.SortFunc(res, func(a, b records.NDVISample) int {
		if c := strings.Compare(a.PaddockID, b.PaddockID); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
	return res, nil
}
