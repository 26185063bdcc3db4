package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrInvalidKey is returned for object keys that would escape the store.
var ErrInvalidKey = errors.New("invalid object key")

// ObjectStore is the object storage collaborator for resumes and file answers.
// The core keeps only the references it hands out.
type ObjectStore interface {
	// GeneratePresignedUploadURL returns a URL the client PUTs the file to.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL returns a URL the file can be fetched from.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file; deleting a missing file is not an error.
	DeleteFile(ctx context.Context, key string) error

	// SaveFile and ReadFile back the local HTTP upload/download routes.
	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
}
