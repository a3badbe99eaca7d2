package models

import "sort"

// Mesh is one indexed triangle list in scene coordinates.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// MeshGroup buckets meshes by normalized classification code.
type MeshGroup map[string][]Mesh

// Append adds meshes to the bucket of code.
func (g MeshGroup) Append(code string, meshes ...Mesh) {
	g[code] = append(g[code], meshes...)
}

// Codes returns the classification codes present, sorted.
func (g MeshGroup) Codes() []string {
	codes := make([]string, 0, len(g))
	for c := range g {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
