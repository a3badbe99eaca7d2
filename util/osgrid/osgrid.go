// Package osgrid converts WGS84 latitude/longitude to OS National Grid
// eastings/northings and parses lettered grid references.
package osgrid

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wroge/wgs84"

	"buildings-server/models"
)

// EPSG:27700, OSGB36 / British National Grid.
const nationalGridEPSG = 27700

var toNationalGrid = wgs84.LonLat().To(wgs84.EPSG().Code(nationalGridEPSG))

var ErrInvalidGridRef = errors.New("invalid grid reference")

// LatLonToGrid converts a WGS84 position to National Grid coordinates,
// rounded to the millimetre.
func LatLonToGrid(p models.LatLon) models.GridCoord {
	easting, northing, _ := toNationalGrid(p.Lon, p.Lat, 0)
	return models.GridCoord{Easting: round3(easting), Northing: round3(northing)}
}

// Parse reads a lettered grid reference such as "TQ 3004 8003" or
// "SU1234" and returns the south-west corner of the referenced square
// and the number of digits per axis.
func Parse(ref string) (models.GridCoord, int, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if len(ref) < 2 {
		return models.GridCoord{}, 0, fmt.Errorf("%w: %q", ErrInvalidGridRef, ref)
	}

	l1, l2 := int(ref[0])-'A', int(ref[1])-'A'
	if l1 < 0 || l1 > 25 || l2 < 0 || l2 > 25 || ref[0] == 'I' || ref[1] == 'I' {
		return models.GridCoord{}, 0, fmt.Errorf("%w: bad square letters in %q", ErrInvalidGridRef, ref)
	}
	// 'I' is not used in grid letters
	if l1 > 7 {
		l1--
	}
	if l2 > 7 {
		l2--
	}

	e100km := ((l1-2)%5)*5 + (l2 % 5)
	n100km := (19 - (l1/5)*5) - (l2 / 5)
	if e100km < 0 || e100km > 6 || n100km < 0 || n100km > 12 {
		return models.GridCoord{}, 0, fmt.Errorf("%w: square %q outside the grid", ErrInvalidGridRef, ref[:2])
	}

	en := strings.Fields(ref[2:])
	if len(en) == 1 {
		digits := en[0]
		en = []string{digits[:len(digits)/2], digits[len(digits)/2:]}
	}
	if len(en) != 2 || len(en[0]) != len(en[1]) || len(en[0]) == 0 || len(en[0]) > 5 {
		return models.GridCoord{}, 0, fmt.Errorf("%w: bad digits in %q", ErrInvalidGridRef, ref)
	}

	e, err := padDigits(en[0])
	if err != nil {
		return models.GridCoord{}, 0, fmt.Errorf("%w: %v", ErrInvalidGridRef, err)
	}
	n, err := padDigits(en[1])
	if err != nil {
		return models.GridCoord{}, 0, fmt.Errorf("%w: %v", ErrInvalidGridRef, err)
	}

	return models.GridCoord{
		Easting:  float64(e100km*100000 + e),
		Northing: float64(n100km*100000 + n),
	}, len(en[0]), nil
}

// padDigits right-pads a digit string to metres, e.g. "30" -> 30000.
func padDigits(s string) (int, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("non-digit %q", c)
		}
	}
	return strconv.Atoi((s + "00000")[:5])
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
