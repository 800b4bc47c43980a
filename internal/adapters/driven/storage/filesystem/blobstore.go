package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

const tempPattern = ".sapbatch-*"

// Ensure BlobStore implements the interfaces.
var (
	_ driven.BlobStore   = (*BlobStore)(nil)
	_ driven.BlobWatcher = (*BlobStore)(nil)
)

// BlobStore stores objects as files under a root directory.
type BlobStore struct {
	root string
}

// New creates a filesystem blob store rooted at root.
func New(root string) (*BlobStore, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: filesystem root is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	return &BlobStore{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *BlobStore) Root() string {
	return s.root
}

// Read returns the file content for ref.
func (s *BlobStore) Read(ctx context.Context, ref domain.ObjectRef) ([]byte, error) {
	path, err := s.resolve(ctx, ref.Container, ref.Key())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, notFound(err))
	}
	return content, nil
}

// Write stores content at ref through a temporary file and rename.
func (s *BlobStore) Write(ctx context.Context, ref domain.ObjectRef, content []byte) error {
	path, err := s.resolve(ctx, ref.Container, ref.Key())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, ref, err)
	}
	if err := writeAtomic(path, content); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, ref, err)
	}
	return nil
}

// Delete removes the file for ref.
func (s *BlobStore) Delete(ctx context.Context, ref domain.ObjectRef) error {
	path, err := s.resolve(ctx, ref.Container, ref.Key())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, notFound(err))
	}
	return nil
}

// List walks the prefix folder of container and returns every regular,
// non-hidden file sorted by key. A missing folder lists as empty.
func (s *BlobStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	base, err := s.resolve(ctx, container, "")
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorageRead, container, err)
	}
	dir, err := s.resolve(ctx, container, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorageRead, container, err)
	}

	var infos []domain.ObjectInfo
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if isHidden(d.Name()) && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		infos = append(infos, domain.ObjectInfo{Name: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s/%s: %w", domain.ErrStorageRead, container, prefix, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// resolve maps a container and key to a path below root. Keys that
// escape their container are rejected.
func (s *BlobStore) resolve(ctx context.Context, container, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	container = domain.JoinKey(container)
	if container == "" || strings.Contains(container, "/") || container == "." || container == ".." {
		return "", fmt.Errorf("%w: container %q", domain.ErrInvalidInput, container)
	}
	base := filepath.Join(s.root, container)
	path := filepath.Join(base, filepath.FromSlash(domain.JoinKey(key)))
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: key %q escapes container", domain.ErrInvalidInput, key)
	}
	return path, nil
}

func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
