package services

import (
	"buildings-server/models"
	"buildings-server/util/scene"
)

// MaterialMapping names the material of each classification bucket.
var MaterialMapping = map[string]string{
	"C":  "Effect-Blue",
	"CE": "Effect-Red",
	"R":  "Effect-Green",
}

// SceneAssembler packages mesh groups into a scene document and buffer.
type SceneAssembler func(group models.MeshGroup, bufferURI string, materials map[string]string) (*scene.Result, error)

// BufferURI is the absolute URI of the buffer belonging to a scene request.
func BufferURI(apiPrefix, requestURI string) string {
	return apiPrefix + models.SwapExtension(requestURI, models.BufferExtension)
}
