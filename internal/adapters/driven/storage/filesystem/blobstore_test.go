package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

func newStore(t *testing.T) *BlobStore {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNew_EmptyRoot(t *testing.T) {
	_, err := New("")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBlobStore_WriteReadDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ref := domain.ObjectRef{Container: "in-process", Path: "sap_batch/IW38", Name: "Carseland 2021-IW38_01-20200606.csv"}

	require.NoError(t, s.Write(ctx, ref, []byte("a\tb\n")))

	path := filepath.Join(s.Root(), "in-process", "sap_batch", "IW38", "Carseland 2021-IW38_01-20200606.csv")
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(onDisk))

	content, err := s.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(content))

	require.NoError(t, s.Delete(ctx, ref))
	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBlobStore_WriteReplaces(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ref := domain.ObjectRef{Container: "raw", Name: "a.htm"}

	require.NoError(t, s.Write(ctx, ref, []byte("one")))
	require.NoError(t, s.Write(ctx, ref, []byte("two")))

	content, err := s.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))

	entries, err := os.ReadDir(filepath.Join(s.Root(), "raw"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBlobStore_Missing(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ref := domain.ObjectRef{Container: "raw", Name: "missing.htm"}

	_, err := s.Read(ctx, ref)
	assert.True(t, errors.Is(err, domain.ErrStorageRead))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = s.Delete(ctx, ref)
	assert.True(t, errors.Is(err, domain.ErrStorageDelete))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBlobStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Read(ctx, domain.ObjectRef{Container: "raw", Path: "../other", Name: "a.htm"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = s.Write(ctx, domain.ObjectRef{Container: "", Name: "a.htm"}, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, errors.Is(err, domain.ErrStorageWrite))
}

func TestBlobStore_List(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, ref := range []domain.ObjectRef{
		{Container: "raw", Path: "sap_batch", Name: "b.htm"},
		{Container: "raw", Path: "sap_batch", Name: "a.htm"},
		{Container: "raw", Path: "other", Name: "c.htm"},
	} {
		require.NoError(t, s.Write(ctx, ref, []byte("x")))
	}
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "raw", "sap_batch", ".partial"), nil, 0o644))

	infos, err := s.List(ctx, "raw", "sap_batch")
	require.NoError(t, err)
	assert.Equal(t, []domain.ObjectInfo{
		{Name: "sap_batch/a.htm", Size: 1},
		{Name: "sap_batch/b.htm", Size: 1},
	}, infos)

	empty, err := s.List(ctx, "raw", "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Job SAP-A-ZI73_01.htm")
	hidden := filepath.Join(dir, ".sapbatch-123")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(hidden, []byte("x"), 0o644))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create file", fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{"write file", fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{"chmod file", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"remove file", fsnotify.Event{Name: filepath.Join(dir, "gone.htm"), Op: fsnotify.Remove}, false},
		{"hidden file", fsnotify.Event{Name: hidden, Op: fsnotify.Create}, false},
		{"directory", fsnotify.Event{Name: dir, Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := handleEvent(tt.event)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestBlobStore_Watch(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refs, _, err := s.WatchSettle(ctx, "raw", "sap_batch", 20*time.Millisecond)
	require.NoError(t, err)

	ref := domain.ObjectRef{Container: "raw", Path: "sap_batch", Name: "Job SAP-A-ZI73_01.htm"}
	require.NoError(t, s.Write(context.Background(), ref, []byte("<html>")))

	select {
	case got := <-refs:
		assert.Equal(t, ref, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	for range refs {
	}
}
