package dao

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Find when nothing is stashed under the path.
var ErrNotFound = errors.New("stash entry not found")

// Stash stores opaque artifacts addressed by account, project, kind and path.
// Implementations must allow concurrent reads and concurrent writes to
// distinct paths; writes to the same path are last-write-wins.
type Stash interface {
	Find(ctx context.Context, account, project, kind, path string) ([]byte, error)
	Save(ctx context.Context, account, project, kind, path string, content []byte) error
}
