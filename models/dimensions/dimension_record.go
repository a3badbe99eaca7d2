package dimensions

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DimensionRecord is the footprint and relative height of one building.
// A zero value is used as the placeholder when the lookup fails.
type DimensionRecord struct {
	UPRN                string            `json:"uprn,omitempty"`
	RelativeHeightToMax *float64          `json:"relativeHeightToMax,omitempty"`
	Geometry            *geojson.Geometry `json:"geometry,omitempty"`
}

// HasHeight reports whether the record carries a usable (non-zero) height.
func (d DimensionRecord) HasHeight() bool {
	return d.RelativeHeightToMax != nil && *d.RelativeHeightToMax != 0
}

// Footprint returns the footprint polygons, or nil when the geometry is
// missing or not polygonal.
func (d DimensionRecord) Footprint() orb.MultiPolygon {
	if d.Geometry == nil {
		return nil
	}
	switch g := d.Geometry.Geometry().(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}
	case orb.MultiPolygon:
		return g
	}
	return nil
}
