package models

import (
	"path"
	"strings"
)

const (
	SceneExtension  = ".gltf"
	BufferExtension = ".bin"
)

// CachedArtifactPair is the generated glTF scene document and its binary buffer.
type CachedArtifactPair struct {
	SceneDocument []byte
	BinaryBuffer  []byte
}

// ArtifactKeys are the stash paths of the two artifacts of one request.
type ArtifactKeys struct {
	ScenePath  string
	BufferPath string
}

// NewArtifactKeys derives both keys from a stash path ending in either
// .gltf or .bin (query string allowed). The keys differ only by extension.
func NewArtifactKeys(stashPath string) ArtifactKeys {
	return ArtifactKeys{
		ScenePath:  SwapExtension(stashPath, SceneExtension),
		BufferPath: SwapExtension(stashPath, BufferExtension),
	}
}

// SwapExtension replaces the file extension of the path component of uri,
// leaving any query string untouched.
func SwapExtension(uri, ext string) string {
	p, query, hasQuery := strings.Cut(uri, "?")
	if old := path.Ext(p); old == SceneExtension || old == BufferExtension {
		p = strings.TrimSuffix(p, old) + ext
	}
	if hasQuery {
		return p + "?" + query
	}
	return p
}
