package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStorage interface {
	// Save writes the reader under name and returns the stored relative path.
	Save(ctx context.Context, file io.Reader, name string) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
