// Package s3 implements the blob store on Amazon S3 or an S3-compatible
// endpoint. Containers map to buckets.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// Config holds the S3 connection settings.
type Config struct {
	// Region is the AWS region.
	Region string

	// Endpoint overrides the service endpoint. Path-style addressing is
	// used when set.
	Endpoint string
}

// BlobStore reads and writes S3 objects.
type BlobStore struct {
	client   *awss3.S3
	uploader *s3manager.Uploader
}

// New creates a blob store using the default credential chain.
func New(cfg Config) (*BlobStore, error) {
	awsCfg := &aws.Config{}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &BlobStore{
		client:   awss3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Read downloads the object for ref.
func (s *BlobStore) Read(ctx context.Context, ref domain.ObjectRef) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Key()),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, classify(err))
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, err)
	}
	return content, nil
}

// Write uploads content, replacing any existing object.
func (s *BlobStore) Write(ctx context.Context, ref domain.ObjectRef, content []byte) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Key()),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, ref, classify(err))
	}
	return nil
}

// Delete removes the object for ref. S3 does not report missing keys on
// delete, so the object is checked first.
func (s *BlobStore) Delete(ctx context.Context, ref domain.ObjectRef) error {
	_, err := s.client.HeadObjectWithContext(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Key()),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, classify(err))
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(ref.Container),
		Key:    aws.String(ref.Key()),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, classify(err))
	}
	return nil
}

// List returns the objects in the bucket below the prefix folder.
func (s *BlobStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	input := &awss3.ListObjectsV2Input{Bucket: aws.String(container)}
	if folder := domain.JoinKey(prefix); folder != "" {
		input.Prefix = aws.String(folder + "/")
	}

	var infos []domain.ObjectInfo
	err := s.client.ListObjectsV2PagesWithContext(ctx, input, func(page *awss3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			infos = append(infos, domain.ObjectInfo{
				Name: aws.StringValue(obj.Key),
				Size: aws.Int64Value(obj.Size),
			})
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorageRead, container, classify(err))
	}
	return infos, nil
}

// classify marks missing objects and buckets with domain.ErrNotFound.
func classify(err error) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case awss3.ErrCodeNoSuchKey, awss3.ErrCodeNoSuchBucket, "NotFound":
			return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		}
	}
	return err
}
