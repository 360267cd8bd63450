// Package storage stores scam report attachments. The local variant
// writes to the uploads directory, the S3 variant keeps them in a bucket
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Save writes the object under key and returns the path clients can
	// later find it at
	Save(ctx context.Context, key string, r io.Reader, size int64) (string, error)
}
