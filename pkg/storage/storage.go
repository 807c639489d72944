package storage

import (
	"context"
	"io"
)

// ObjectStore fetches uploaded documents by name. The chat endpoint only ever
// reads; uploads happen out of band.
type ObjectStore interface {
	Get(ctx context.Context, name string) (io.ReadCloser, error)
}
