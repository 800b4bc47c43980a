// Package azure implements the blob store on Azure Blob Storage.
package azure

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore reads and writes block blobs through an azblob client.
type BlobStore struct {
	client *azblob.Client
}

// New creates a blob store from a storage account connection string.
func New(connectionString string) (*BlobStore, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("%w: azure connection string is empty", domain.ErrInvalidInput)
	}
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create azure client: %w", err)
	}
	return &BlobStore{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *azblob.Client) *BlobStore {
	return &BlobStore{client: client}
}

// Read downloads the blob for ref.
func (s *BlobStore) Read(ctx context.Context, ref domain.ObjectRef) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, ref.Container, ref.Key(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, classify(err))
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, err)
	}
	return content, nil
}

// Write uploads content as a block blob, replacing any existing blob.
func (s *BlobStore) Write(ctx context.Context, ref domain.ObjectRef, content []byte) error {
	if _, err := s.client.UploadBuffer(ctx, ref.Container, ref.Key(), content, nil); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, ref, classify(err))
	}
	return nil
}

// Delete removes the blob for ref.
func (s *BlobStore) Delete(ctx context.Context, ref domain.ObjectRef) error {
	if _, err := s.client.DeleteBlob(ctx, ref.Container, ref.Key(), nil); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, classify(err))
	}
	return nil
}

// List returns the blobs in container below the prefix folder.
func (s *BlobStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	opts := &azblob.ListBlobsFlatOptions{}
	if folder := domain.JoinKey(prefix); folder != "" {
		folder += "/"
		opts.Prefix = &folder
	}

	var infos []domain.ObjectInfo
	pager := s.client.NewListBlobsFlatPager(container, opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorageRead, container, classify(err))
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			info := domain.ObjectInfo{Name: *item.Name}
			if item.Properties != nil && item.Properties.ContentLength != nil {
				info.Size = *item.Properties.ContentLength
			}
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// classify marks missing blobs and containers with domain.ErrNotFound.
func classify(err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}
