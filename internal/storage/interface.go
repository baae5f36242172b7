package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface defines the interface for property-image storage
// backends. The mock implementation serves uploads from the local
// filesystem through HTTP endpoints on the API router.
type StorageInterface interface {
	// GeneratePresignedUploadURL generates a URL the client PUTs the image to.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a URL the image can be fetched from.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size.
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves a file (used by the mock storage HTTP handler).
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a file for reading (used by the mock storage HTTP handler).
	ReadFile(key string) (io.ReadCloser, error)
}
