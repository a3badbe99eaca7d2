// Package mesh turns building footprints into extruded triangle meshes.
//
// Scene coordinates are Y-up: x is easting and -z is northing, both relative
// to a reference point, and y is height.
package mesh

import (
	"math"

	"github.com/paulmach/orb"

	"buildings-server/models"
)

// HeightScale converts a relative height value into scene units.
const HeightScale = 1.0

// Extrude builds one mesh per footprint polygon: a wall quad per outer-ring
// edge plus a flat roof. Inner rings are ignored. Polygons with fewer than
// three distinct vertices produce nothing.
func Extrude(footprint orb.MultiPolygon, height float64, ref models.GridCoord) []models.Mesh {
	var out []models.Mesh
	h := float32(height * HeightScale)
	for _, poly := range footprint {
		if len(poly) == 0 {
			continue
		}
		ring := openRing(poly[0], ref)
		if len(ring) < 3 {
			continue
		}
		if signedArea(ring) < 0 {
			reverse(ring)
		}

		var m models.Mesh
		addWalls(&m, ring, h)
		addRoof(&m, ring, h)
		out = append(out, m)
	}
	return out
}

// openRing translates ring to the reference point and drops the closing vertex.
func openRing(r orb.Ring, ref models.GridCoord) []orb.Point {
	pts := make([]orb.Point, 0, len(r))
	for _, p := range r {
		pts = append(pts, orb.Point{p[0] - ref.Easting, p[1] - ref.Northing})
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func addWalls(m *models.Mesh, ring []orb.Point, h float32) {
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		de, dn := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(de, dn)
		if l == 0 {
			continue
		}
		// outward normal of a CCW ring, mapped to scene axes
		normal := [3]float32{float32(dn / l), 0, float32(de / l)}

		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions,
			vertex(a, 0), vertex(b, 0), vertex(b, h), vertex(a, h))
		m.Normals = append(m.Normals, normal, normal, normal, normal)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
}

func addRoof(m *models.Mesh, ring []orb.Point, h float32) {
	base := uint32(len(m.Positions))
	up := [3]float32{0, 1, 0}
	for _, p := range ring {
		m.Positions = append(m.Positions, vertex(p, h))
		m.Normals = append(m.Normals, up)
	}
	for _, i := range Triangulate(ring) {
		m.Indices = append(m.Indices, base+i)
	}
}

func vertex(p orb.Point, y float32) [3]float32 {
	return [3]float32{float32(p[0]), y, float32(-p[1])}
}

// Triangulate ear-clips a simple counter-clockwise polygon and returns
// triangle indices into ring, each triangle counter-clockwise.
func Triangulate(ring []orb.Point) []uint32 {
	idx := make([]int, len(ring))
	for i := range idx {
		idx[i] = i
	}

	var tris []uint32
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			prev, cur, next := idx[(i+len(idx)-1)%len(idx)], idx[i], idx[(i+1)%len(idx)]
			if !isEar(ring, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, uint32(prev), uint32(cur), uint32(next))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// degenerate input; fan the remainder
			for i := 1; i+1 < len(idx); i++ {
				tris = append(tris, uint32(idx[0]), uint32(idx[i]), uint32(idx[i+1]))
			}
			return tris
		}
	}
	if len(idx) == 3 {
		tris = append(tris, uint32(idx[0]), uint32(idx[1]), uint32(idx[2]))
	}
	return tris
}

func isEar(ring []orb.Point, idx []int, prev, cur, next int) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	if cross(a, b, c) <= 0 {
		return false
	}
	for _, j := range idx {
		if j == prev || j == cur || j == next {
			continue
		}
		if inTriangle(ring[j], a, b, c) {
			return false
		}
	}
	return true
}

func cross(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func inTriangle(p, a, b, c orb.Point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}

func signedArea(ring []orb.Point) float64 {
	var s float64
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		s += a[0]*b[1] - b[0]*a[1]
	}
	return s / 2
}

func reverse(ring []orb.Point) {
	for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
		ring[i], ring[j] = ring[j], ring[i]
	}
}
