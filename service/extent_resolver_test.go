package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildings-server/models"
)

func TestResolveExtent_Radius(t *testing.T) {
	extent, err := ResolveExtent(models.Query{
		Method:       models.MethodRadius,
		Center:       models.LatLon{Lat: 52.65798, Lon: 1.71605},
		RadiusMeters: 100,
	})
	require.NoError(t, err)

	assert.True(t, extent.IsRadius())
	assert.Equal(t, 100.0, extent.Radius)
	assert.InDelta(t, 651409, extent.Center.Easting, 5)
	assert.InDelta(t, 313177, extent.Center.Northing, 5)
	assert.Equal(t, extent.Center, extent.ReferencePoint())
}

func TestResolveExtent_BBox(t *testing.T) {
	extent, err := ResolveExtent(models.Query{
		Method:     models.MethodBBox,
		LowerLeft:  models.LatLon{Lat: 51.50, Lon: -0.13},
		UpperRight: models.LatLon{Lat: 51.51, Lon: -0.12},
	})
	require.NoError(t, err)

	assert.False(t, extent.IsRadius())
	assert.Less(t, extent.LowerLeft.Easting, extent.UpperRight.Easting)
	assert.Less(t, extent.LowerLeft.Northing, extent.UpperRight.Northing)
	assert.Equal(t, extent.LowerLeft, extent.ReferencePoint())
}

func TestResolveExtent_GridReference(t *testing.T) {
	tests := []struct {
		ref       string
		lowerLeft models.GridCoord
		size      float64
	}{
		{"TG51401317", models.GridCoord{Easting: 651400, Northing: 313170}, 9},
		{"TG 5140 1317", models.GridCoord{Easting: 651400, Northing: 313170}, 9},
		{"TG514131", models.GridCoord{Easting: 651400, Northing: 313100}, 99},
		{"TG5113", models.GridCoord{Easting: 651000, Northing: 313000}, 999},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			extent, err := ResolveExtent(models.Query{Method: models.MethodOSGrid, GridReference: tt.ref})
			require.NoError(t, err)
			assert.Equal(t, tt.lowerLeft, extent.LowerLeft)
			assert.Equal(t, tt.lowerLeft.Add(tt.size), extent.UpperRight)
		})
	}
}

func TestResolveExtent_Invalid(t *testing.T) {
	tests := map[string]models.Query{
		"seven character grid ref":  {Method: models.MethodOSGrid, GridReference: "TG51401"},
		"twelve character grid ref": {Method: models.MethodOSGrid, GridReference: "TG5140913177"},
		"bad grid letters":          {Method: models.MethodOSGrid, GridReference: "II1234"},
		"zero radius":               {Method: models.MethodRadius, Center: models.LatLon{Lat: 51.5}, RadiusMeters: 0},
		"latitude out of range":     {Method: models.MethodRadius, Center: models.LatLon{Lat: 95}, RadiusMeters: 10},
		"swapped bbox corners": {
			Method:     models.MethodBBox,
			LowerLeft:  models.LatLon{Lat: 51.51, Lon: -0.12},
			UpperRight: models.LatLon{Lat: 51.50, Lon: -0.13},
		},
		"unknown method": {Method: "polygon"},
	}
	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveExtent(q)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"method": {"radius"}, "lat": {"51.5"}, "lon": {"-0.12"}, "radius": {"250"}, "draw": {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MethodRadius, q.Method)
	assert.Equal(t, models.LatLon{Lat: 51.5, Lon: -0.12}, q.Center)
	assert.Equal(t, 250.0, q.RadiusMeters)
	assert.True(t, q.Draw)

	q, err = ParseQuery(url.Values{
		"method": {"bbox"}, "lowerLeftLat": {"51.50"}, "lowerLeftLon": {"-0.13"},
		"upperRightLat": {"51.51"}, "upperRightLon": {"-0.12"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.LatLon{Lat: 51.50, Lon: -0.13}, q.LowerLeft)
	assert.Equal(t, models.LatLon{Lat: 51.51, Lon: -0.12}, q.UpperRight)
	assert.False(t, q.Draw)

	q, err = ParseQuery(url.Values{"method": {"osgrid"}, "osgridref": {" TG5113 "}, "draw": {"0"}})
	require.NoError(t, err)
	assert.Equal(t, "TG5113", q.GridReference)
	assert.False(t, q.Draw)
}

func TestParseQuery_Invalid(t *testing.T) {
	tests := map[string]url.Values{
		"no method":       {},
		"unknown method":  {"method": {"circle"}},
		"missing radius":  {"method": {"radius"}, "lat": {"51.5"}, "lon": {"0"}},
		"non-numeric lat": {"method": {"radius"}, "lat": {"north"}, "lon": {"0"}, "radius": {"10"}},
		"NaN lon":         {"method": {"radius"}, "lat": {"51"}, "lon": {"NaN"}, "radius": {"10"}},
		"missing corner":  {"method": {"bbox"}, "lowerLeftLat": {"51"}, "lowerLeftLon": {"0"}, "upperRightLat": {"52"}},
		"missing ref":     {"method": {"osgrid"}},
	}
	for name, vals := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuery(vals)
			assert.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}
