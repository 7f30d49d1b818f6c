// Package jsonfile provides a file-backed implementation of storage.Store.
// The document is kept as a single pretty-printed JSON file and replaced
// wholesale on every write.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mrcarwash/backend/internal/storage"
)

// DefaultLockTimeout bounds the wait for the single-writer lock. Operations
// that cannot acquire the lock in time fail with storage.ErrBusy instead of
// queueing forever.
const DefaultLockTimeout = 5 * time.Second

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store on top of a single JSON file.
type Store struct {
	path        string
	lockTimeout time.Duration

	// sem is a one-slot semaphore guarding the load-mutate-save cycle.
	// A channel rather than sync.Mutex so acquisition can time out.
	sem chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout overrides the bounded wait for the writer lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// New creates a Store backed by the JSON file at path. The parent directory
// is created if missing; the file itself is created on first write.
func New(path string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		path:        path,
		lockTimeout: DefaultLockTimeout,
		sem:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the store. The file handle is not held open between
// operations, so there is nothing to tear down.
func (s *Store) Close() error {
	return nil
}

// Read returns a snapshot of the current document.
func (s *Store) Read(ctx context.Context) (*storage.Document, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	return s.load(), nil
}

// Update runs fn against the current document and persists the result,
// holding the writer lock for the whole load-mutate-save cycle.
func (s *Store) Update(ctx context.Context, fn func(*storage.Document) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// acquire takes the writer lock, giving up after the bounded wait or when
// ctx is done.
func (s *Store) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", storage.ErrBusy, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("%w: lock not acquired within %s", storage.ErrBusy, s.lockTimeout)
	}
}

func (s *Store) release() {
	<-s.sem
}

// load reads and decodes the backing file. A missing or corrupt file yields
// an empty schema-complete document; the store self-heals on the next write.
func (s *Store) load() *storage.Document {
	doc, err := s.decode()
	if err != nil {
		slog.Warn("Data file unreadable, starting from empty document",
			"path", s.path,
			"error", err,
		)
		return storage.Empty()
	}
	return doc
}

func (s *Store) decode() (*storage.Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return storage.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}

	doc := &storage.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	doc.Normalize()
	return doc, nil
}

// save serializes the full document and atomically replaces the backing
// file. Any failure surfaces as storage.ErrPersistence so callers never
// mistake a dropped write for a committed one.
func (s *Store) save(doc *storage.Document) error {
	doc.Normalize()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".data-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrPersistence, err)
	}
	return nil
}
