package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory, %w", err)
	}

	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, key string, r io.Reader, _ int64) (string, error) {
	// Keys are generated server-side, but don't let a crafted one
	// escape the upload directory
	path := filepath.Join(l.dir, filepath.Base(key))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file, %w", err)
	}

	return path, nil
}
