package services

import (
	"fmt"
	"strings"

	"buildings-server/models"
	"buildings-server/util/osgrid"
)

// gridRefSizes maps grid reference length (letters included) to the
// square size added to the parsed south-west corner.
var gridRefSizes = map[int]float64{
	10: 9,
	8:  99,
	6:  999,
}

// ResolveExtent converts a query into a National Grid extent.
func ResolveExtent(q models.Query) (models.ProjectedExtent, error) {
	switch q.Method {
	case models.MethodRadius:
		if q.RadiusMeters <= 0 {
			return models.ProjectedExtent{}, fmt.Errorf("%w: radius must be positive", ErrInvalidQuery)
		}
		if err := checkLatLon(q.Center); err != nil {
			return models.ProjectedExtent{}, err
		}
		return models.ProjectedExtent{
			Method: models.MethodRadius,
			Center: osgrid.LatLonToGrid(q.Center),
			Radius: q.RadiusMeters,
		}, nil

	case models.MethodBBox:
		if err := checkLatLon(q.LowerLeft); err != nil {
			return models.ProjectedExtent{}, err
		}
		if err := checkLatLon(q.UpperRight); err != nil {
			return models.ProjectedExtent{}, err
		}
		ll := osgrid.LatLonToGrid(q.LowerLeft)
		ur := osgrid.LatLonToGrid(q.UpperRight)
		if ll.Easting > ur.Easting || ll.Northing > ur.Northing {
			return models.ProjectedExtent{}, fmt.Errorf("%w: lower-left corner is not below and left of upper-right corner", ErrInvalidQuery)
		}
		return models.ProjectedExtent{Method: models.MethodBBox, LowerLeft: ll, UpperRight: ur}, nil

	case models.MethodOSGrid:
		ref := strings.ReplaceAll(q.GridReference, " ", "")
		size, ok := gridRefSizes[len(ref)]
		if !ok {
			return models.ProjectedExtent{}, fmt.Errorf("%w: grid reference %q must be 6, 8 or 10 characters", ErrInvalidQuery, q.GridReference)
		}
		base, _, err := osgrid.Parse(ref)
		if err != nil {
			return models.ProjectedExtent{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return models.ProjectedExtent{
			Method:     models.MethodOSGrid,
			LowerLeft:  base,
			UpperRight: base.Add(size),
		}, nil
	}
	return models.ProjectedExtent{}, fmt.Errorf("%w: %s", ErrInvalidQuery, InvalidMethodMessage)
}

func checkLatLon(p models.LatLon) error {
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: coordinate (%v, %v) out of range", ErrInvalidQuery, p.Lat, p.Lon)
	}
	return nil
}
