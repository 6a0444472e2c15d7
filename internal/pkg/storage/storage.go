package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage keeps uploaded workbooks until they are imported.
type FileStorage interface {
	// Upload stores file under path and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens a stored file. Missing files yield ErrFileNotFound.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	// GetURL returns where the file can be fetched from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)

	// PurgeOlderThan deletes files under prefix last modified before cutoff
	// and returns how many were removed.
	PurgeOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}
