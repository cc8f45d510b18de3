package secondary

import (
	"context"
	"io"
	"time"
)

// ArtifactInfo describes a stored artifact
type ArtifactInfo struct {
	Key     string
	ModTime time.Time
}

// ArtifactStore holds sanitized game documents. Single-object operations are
// atomic; there is no transaction spanning the record store.
type ArtifactStore interface {
	Put(ctx context.Context, key string, r io.ReadSeeker, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ArtifactInfo, error)
}
