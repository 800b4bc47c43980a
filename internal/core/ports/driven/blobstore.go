package driven

import (
	"context"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

// BlobStore reads, writes, deletes and lists objects keyed by
// container + path + name.
//
// Implementations wrap failures so that errors.Is matches
// domain.ErrStorageRead, domain.ErrStorageWrite or domain.ErrStorageDelete.
// A missing object on Read or Delete additionally matches domain.ErrNotFound.
type BlobStore interface {
	// Read returns the full content of an object.
	Read(ctx context.Context, ref domain.ObjectRef) ([]byte, error)

	// Write stores content as a single object, replacing any existing one.
	// The write is all-or-nothing from a reader's point of view.
	Write(ctx context.Context, ref domain.ObjectRef, content []byte) error

	// Delete removes an object.
	Delete(ctx context.Context, ref domain.ObjectRef) error

	// List returns the objects in container whose key starts with prefix.
	// Names are full keys relative to the container.
	List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error)
}

// BlobWatcher emits references to objects as they are created.
type BlobWatcher interface {
	// Watch streams new objects under container/prefix until ctx is cancelled.
	// The error channel receives non-fatal watch errors.
	Watch(ctx context.Context, container, prefix string) (<-chan domain.ObjectRef, <-chan error, error)
}
