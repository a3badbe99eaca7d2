package services

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"buildings-server/models"
)

const (
	METHOD_QUERY_ARG          = "method"
	LAT_QUERY_ARG             = "lat"
	LON_QUERY_ARG             = "lon"
	RADIUS_QUERY_ARG          = "radius"
	UPPER_RIGHT_LAT_QUERY_ARG = "upperRightLat"
	UPPER_RIGHT_LON_QUERY_ARG = "upperRightLon"
	LOWER_LEFT_LAT_QUERY_ARG  = "lowerLeftLat"
	LOWER_LEFT_LON_QUERY_ARG  = "lowerLeftLon"
	OSGRID_REF_QUERY_ARG      = "osgridref"
	DRAW_QUERY_ARG            = "draw"
)

// ParseQuery turns request query arguments into a Query. Any missing or
// non-numeric argument required by the chosen method is an ErrInvalidQuery.
func ParseQuery(vals url.Values) (models.Query, error) {
	q := models.Query{
		Method: models.QueryMethod(vals.Get(METHOD_QUERY_ARG)),
		Draw:   parseDraw(vals.Get(DRAW_QUERY_ARG)),
	}

	var err error
	switch q.Method {
	case models.MethodRadius:
		if q.Center.Lat, err = parseArgFloat64(vals, LAT_QUERY_ARG); err != nil {
			return q, err
		}
		if q.Center.Lon, err = parseArgFloat64(vals, LON_QUERY_ARG); err != nil {
			return q, err
		}
		if q.RadiusMeters, err = parseArgFloat64(vals, RADIUS_QUERY_ARG); err != nil {
			return q, err
		}
	case models.MethodBBox:
		if q.UpperRight.Lat, err = parseArgFloat64(vals, UPPER_RIGHT_LAT_QUERY_ARG); err != nil {
			return q, err
		}
		if q.UpperRight.Lon, err = parseArgFloat64(vals, UPPER_RIGHT_LON_QUERY_ARG); err != nil {
			return q, err
		}
		if q.LowerLeft.Lat, err = parseArgFloat64(vals, LOWER_LEFT_LAT_QUERY_ARG); err != nil {
			return q, err
		}
		if q.LowerLeft.Lon, err = parseArgFloat64(vals, LOWER_LEFT_LON_QUERY_ARG); err != nil {
			return q, err
		}
	case models.MethodOSGrid:
		q.GridReference = strings.TrimSpace(vals.Get(OSGRID_REF_QUERY_ARG))
		if q.GridReference == "" {
			return q, fmt.Errorf("%w: missing argument %s", ErrInvalidQuery, OSGRID_REF_QUERY_ARG)
		}
	default:
		return q, fmt.Errorf("%w: %s", ErrInvalidQuery, InvalidMethodMessage)
	}
	return q, nil
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	if s == "" {
		return 0, fmt.Errorf("%w: missing argument %s", ErrInvalidQuery, name)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: invalid argument %s=%q", ErrInvalidQuery, name, s)
	}
	return f, nil
}

// parseDraw treats any non-zero integer as true and everything else as false.
func parseDraw(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n != 0
}
