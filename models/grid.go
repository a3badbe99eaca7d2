package models

import (
	"fmt"

	"github.com/paulmach/orb"
)

// LatLon is a WGS84 latitude/longitude pair in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GridCoord is a projected coordinate on the OS National Grid, in metres.
type GridCoord struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
}

// Point returns the coordinate as a planar orb point (x = easting, y = northing).
func (g GridCoord) Point() orb.Point {
	return orb.Point{g.Easting, g.Northing}
}

// Add offsets both axes by size.
func (g GridCoord) Add(size float64) GridCoord {
	return GridCoord{Easting: g.Easting + size, Northing: g.Northing + size}
}

// String formats the coordinate the way the OS APIs expect it: "easting,northing".
func (g GridCoord) String() string {
	return fmt.Sprintf("%s,%s", ftoa(g.Easting), ftoa(g.Northing))
}
