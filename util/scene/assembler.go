// Package scene packages grouped building meshes into a glTF 2.0 document
// and its external binary buffer.
package scene

import (
	"errors"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"buildings-server/models"
)

// DefaultMaterial is used for classification codes missing from the mapping.
const DefaultMaterial = "Effect-Default"

var materialColors = map[string][4]float32{
	"Effect-Blue":   {0.2, 0.4, 0.9, 1},
	"Effect-Red":    {0.9, 0.25, 0.2, 1},
	"Effect-Green":  {0.3, 0.8, 0.35, 1},
	DefaultMaterial: {0.7, 0.7, 0.7, 1},
}

var ErrNoBufferURI = errors.New("buffer uri is required for a non-empty scene")

// Result is an assembled scene: the glTF document and the bytes its single
// buffer points at.
type Result struct {
	Document *gltf.Document
	Buffer   []byte
}

// Assemble merges each classification bucket into one mesh with a single
// triangle primitive. bufferURI is written as the buffer's uri and
// materials maps classification codes to material names. A group without
// meshes yields a valid scene with no buffers and an empty Buffer.
func Assemble(group models.MeshGroup, bufferURI string, materials map[string]string) (*Result, error) {
	doc := &gltf.Document{
		Asset:   gltf.Asset{Version: "2.0", Generator: "buildings-server"},
		Scene:   gltf.Index(0),
		Scenes:  []*gltf.Scene{{Name: "buildings"}},
		Buffers: []*gltf.Buffer{{URI: bufferURI}},
	}
	materialIndex := map[string]uint32{}

	for _, code := range group.Codes() {
		merged := merge(group[code])
		if len(merged.Indices) == 0 {
			continue
		}
		if bufferURI == "" {
			return nil, ErrNoBufferURI
		}

		name := materials[code]
		if name == "" {
			name = DefaultMaterial
		}
		mat, ok := materialIndex[name]
		if !ok {
			mat = uint32(len(doc.Materials))
			materialIndex[name] = mat
			doc.Materials = append(doc.Materials, newMaterial(name))
		}

		pos := modeler.WritePosition(doc, merged.Positions)
		nrm := modeler.WriteNormal(doc, merged.Normals)
		idx := modeler.WriteIndices(doc, merged.Indices)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: code,
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]uint32{gltf.POSITION: pos, gltf.NORMAL: nrm},
				Indices:    gltf.Index(idx),
				Material:   gltf.Index(mat),
				Mode:       gltf.PrimitiveTriangles,
			}},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: code, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
	}

	if len(doc.Meshes) == 0 {
		doc.Buffers = nil
		return &Result{Document: doc, Buffer: []byte{}}, nil
	}
	return &Result{Document: doc, Buffer: doc.Buffers[0].Data}, nil
}

func newMaterial(name string) *gltf.Material {
	color, ok := materialColors[name]
	if !ok {
		color = materialColors[DefaultMaterial]
	}
	return &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}
}

func merge(meshes []models.Mesh) models.Mesh {
	var out models.Mesh
	for _, m := range meshes {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, m.Positions...)
		out.Normals = append(out.Normals, m.Normals...)
		for _, i := range m.Indices {
			out.Indices = append(out.Indices, base+i)
		}
	}
	return out
}
