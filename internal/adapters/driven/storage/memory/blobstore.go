package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// Operation names recorded by BlobStore.
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpDelete = "delete"
	OpList   = "list"
)

// BlobStore is an in-memory implementation of driven.BlobStore.
// It records every call so tests can assert on order and count, and
// individual operations can be made to fail.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	ops     []string
	fail    map[string]error
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		objects: make(map[string][]byte),
		fail:    make(map[string]error),
	}
}

// Put stores content without recording an operation.
func (s *BlobStore) Put(ref domain.ObjectRef, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[ref.String()] = append([]byte(nil), content...)
}

// Object returns stored content without recording an operation.
func (s *BlobStore) Object(ref domain.ObjectRef) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.objects[ref.String()]
	return content, ok
}

// Len returns the number of stored objects.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *BlobStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Ops returns the operations performed so far, oldest first.
func (s *BlobStore) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ops...)
}

// Calls returns how many times op was invoked.
func (s *BlobStore) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, o := range s.ops {
		if o == op {
			n++
		}
	}
	return n
}

// Read returns the content of ref.
func (s *BlobStore) Read(ctx context.Context, ref domain.ObjectRef) ([]byte, error) {
	if err := s.begin(ctx, OpRead); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.objects[ref.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageRead, ref, domain.ErrNotFound)
	}
	return append([]byte(nil), content...), nil
}

// Write stores content at ref, replacing any existing object.
func (s *BlobStore) Write(ctx context.Context, ref domain.ObjectRef, content []byte) error {
	if err := s.begin(ctx, OpWrite); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageWrite, ref, err)
	}
	s.Put(ref, content)
	return nil
}

// Delete removes ref.
func (s *BlobStore) Delete(ctx context.Context, ref domain.ObjectRef) error {
	if err := s.begin(ctx, OpDelete); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ref.String()
	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("%w: %s: %w", domain.ErrStorageDelete, ref, domain.ErrNotFound)
	}
	delete(s.objects, key)
	return nil
}

// List returns the objects in container under the prefix folder, sorted
// by name. Names are keys relative to the container.
func (s *BlobStore) List(ctx context.Context, container, prefix string) ([]domain.ObjectInfo, error) {
	if err := s.begin(ctx, OpList); err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorageRead, container, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	base := domain.JoinKey(container) + "/"
	folder := domain.JoinKey(prefix)
	if folder != "" {
		folder += "/"
	}

	var infos []domain.ObjectInfo
	for key, content := range s.objects {
		name, ok := strings.CutPrefix(key, base)
		if !ok || !strings.HasPrefix(name, folder) {
			continue
		}
		infos = append(infos, domain.ObjectInfo{Name: name, Size: int64(len(content))})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (s *BlobStore) begin(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
	return s.fail[op]
}
