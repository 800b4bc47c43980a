package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

// DefaultSettle is how long a file must stay quiet before it is reported.
const DefaultSettle = 500 * time.Millisecond

// Watch reports files that land in the prefix folder of container. A file
// is reported once no create or write event has arrived for it within the
// settle window. Hidden files and directories are ignored. Both channels
// are closed when ctx is cancelled.
func (s *BlobStore) Watch(ctx context.Context, container, prefix string) (<-chan domain.ObjectRef, <-chan error, error) {
	return s.WatchSettle(ctx, container, prefix, DefaultSettle)
}

// WatchSettle is Watch with an explicit settle window.
func (s *BlobStore) WatchSettle(ctx context.Context, container, prefix string, settle time.Duration) (<-chan domain.ObjectRef, <-chan error, error) {
	dir, err := s.resolve(ctx, container, prefix)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	refs := make(chan domain.ObjectRef)
	errs := make(chan error, 1)
	w := &watch{
		container: container,
		prefix:    domain.JoinKey(prefix),
		settle:    settle,
		pending:   make(map[string]*time.Timer),
		ready:     make(chan string),
		done:      make(chan struct{}),
	}
	go w.run(ctx, watcher, refs, errs)
	return refs, errs, nil
}

type watch struct {
	container string
	prefix    string
	settle    time.Duration
	pending   map[string]*time.Timer
	ready     chan string
	done      chan struct{}
}

func (w *watch) run(ctx context.Context, watcher *fsnotify.Watcher, refs chan<- domain.ObjectRef, errs chan<- error) {
	defer close(refs)
	defer close(errs)
	defer close(w.done)
	defer watcher.Close()
	defer func() {
		for _, t := range w.pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if name, ok := handleEvent(event); ok {
				w.schedule(name)
			}
		case name := <-w.ready:
			if _, ok := w.pending[name]; !ok {
				continue
			}
			delete(w.pending, name)
			if _, err := os.Stat(name); err != nil {
				continue
			}
			ref := domain.ObjectRef{Container: w.container, Path: w.prefix, Name: filepath.Base(name)}
			select {
			case refs <- ref:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			default:
			}
		}
	}
}

func (w *watch) schedule(name string) {
	if t, ok := w.pending[name]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[name] = time.AfterFunc(w.settle, func() {
		select {
		case w.ready <- name:
		case <-w.done:
		}
	})
}

// handleEvent returns the file path for create and write events on
// regular, non-hidden files.
func handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(filepath.Base(event.Name)) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}
