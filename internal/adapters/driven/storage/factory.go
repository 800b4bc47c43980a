// Package storage provides the factory for blob store adapters.
package storage

import (
	"fmt"

	"github.com/custodia-labs/sapbatch/internal/adapters/driven/storage/azure"
	"github.com/custodia-labs/sapbatch/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/sapbatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sapbatch/internal/adapters/driven/storage/s3"
	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// NewBlobStore creates the blob store selected by settings.
func NewBlobStore(settings *domain.StorageSettings) (driven.BlobStore, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: storage settings are nil", domain.ErrInvalidInput)
	}
	if !settings.Backend.IsValid() {
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrUnsupportedType, settings.Backend)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s backend is not configured", domain.ErrInvalidInput, settings.Backend.Description())
	}

	var (
		store driven.BlobStore
		err   error
	)
	switch settings.Backend {
	case domain.StorageAzure:
		store, err = azure.New(settings.AzureConnectionString)
	case domain.StorageS3:
		store, err = s3.New(s3.Config{Region: settings.S3Region, Endpoint: settings.S3Endpoint})
	case domain.StorageFilesystem:
		store, err = filesystem.New(settings.FilesystemRoot)
	default:
		store = memory.NewBlobStore()
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
