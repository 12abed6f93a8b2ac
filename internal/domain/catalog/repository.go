package catalog

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for media record persistence
type Repository interface {
	// Save stores a media record
	Save(ctx context.Context, record *MediaRecord) error
	// FindByID finds a media record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*MediaRecord, error)
	// FindAll returns every record, oldest first
	FindAll(ctx context.Context) ([]*MediaRecord, error)
	// Delete deletes a media record
	Delete(ctx context.Context, id uuid.UUID) error
}

// Storage holds the uploaded media bytes
type Storage interface {
	// Store stores data from a reader
	Store(ctx context.Context, key string, reader io.Reader) error

	// Retrieve retrieves data to a reader
	Retrieve(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete deletes stored data
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL the stored data can be fetched from
	GetURL(ctx context.Context, key string) (string, error)
}

// Prober reads the playable length of a media file
type Prober interface {
	// Probe returns the duration of the file at path. Implementations return
	// ErrProbeUnsupported for content types they do not handle.
	Probe(ctx context.Context, path, mimeType string) (time.Duration, error)
}
