package models

// QueryMethod selects how the spatial extent of a request is described.
type QueryMethod string

const (
	MethodRadius QueryMethod = "radius"
	MethodBBox   QueryMethod = "bbox"
	MethodOSGrid QueryMethod = "osgrid"
)

// Query is a parsed building request. Only the fields relevant to Method are set.
type Query struct {
	Method QueryMethod

	// radius
	Center       LatLon
	RadiusMeters float64

	// bbox
	LowerLeft  LatLon
	UpperRight LatLon

	// osgrid
	GridReference string

	// Draw must be true for geometry to be generated.
	Draw bool
}
