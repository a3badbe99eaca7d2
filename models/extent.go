package models

import (
	"strconv"

	"github.com/paulmach/orb"
)

// ProjectedExtent is a query area on the National Grid. Radius queries carry
// Center and Radius; bbox and osgrid queries carry LowerLeft and UpperRight.
type ProjectedExtent struct {
	Method     QueryMethod `json:"method"`
	Center     GridCoord   `json:"center"`
	Radius     float64     `json:"radius,omitempty"`
	LowerLeft  GridCoord   `json:"lower_left"`
	UpperRight GridCoord   `json:"upper_right"`
}

// IsRadius reports whether the extent is a center/radius pair.
func (e ProjectedExtent) IsRadius() bool {
	return e.Method == MethodRadius
}

// ReferencePoint is the origin meshes are placed relative to: the center for
// radius queries and the lower-left corner for everything else.
func (e ProjectedExtent) ReferencePoint() GridCoord {
	if e.IsRadius() {
		return e.Center
	}
	return e.LowerLeft
}

// Bound returns the planar bounding box covered by the extent.
func (e ProjectedExtent) Bound() orb.Bound {
	if e.IsRadius() {
		return orb.Bound{
			Min: orb.Point{e.Center.Easting - e.Radius, e.Center.Northing - e.Radius},
			Max: orb.Point{e.Center.Easting + e.Radius, e.Center.Northing + e.Radius},
		}
	}
	return orb.Bound{Min: e.LowerLeft.Point(), Max: e.UpperRight.Point()}
}

// BBoxString formats the extent as "minE,minN,maxE,maxN".
func (e ProjectedExtent) BBoxString() string {
	b := e.Bound()
	return ftoa(b.Min[0]) + "," + ftoa(b.Min[1]) + "," + ftoa(b.Max[0]) + "," + ftoa(b.Max[1])
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
