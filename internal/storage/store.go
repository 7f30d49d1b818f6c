// Package storage provides abstractions for the persistent data store.
//
// The whole dataset lives in a single Document. Every operation re-reads the
// document from durable storage and, if it mutates anything, re-writes it
// wholesale. Store implementations must serialize those load-mutate-save
// cycles so concurrent callers can never interleave their load and save
// steps and silently drop each other's writes.
package storage

import (
	"context"
	"errors"
)

// Sentinel errors for store failures. Implementations wrap these so callers
// can discriminate with errors.Is.
var (
	// ErrBusy means the single-writer lock could not be acquired within the
	// bounded wait. The operation did not run and may be retried.
	ErrBusy = errors.New("store busy")

	// ErrPersistence means the document could not be written back. The
	// in-memory mutation was discarded, nothing was committed.
	ErrPersistence = errors.New("persist failed")

	// ErrCorrupt means the backing content is not a valid document. Load
	// paths recover from it locally by substituting an empty document; it
	// never reaches callers of Store.
	ErrCorrupt = errors.New("corrupt document")
)

// Store is the single shared data store. This abstraction keeps callers from
// bypassing the serialization discipline: the only way to mutate the dataset
// is through Update's critical section.
type Store interface {
	// Read returns a snapshot of the current document. Mutating the snapshot
	// has no effect on stored data.
	Read(ctx context.Context) (*Document, error)

	// Update runs fn against the current document under the single-writer
	// lock and persists the result. If fn returns an error nothing is
	// written and the error is returned unchanged. Mutations that span
	// collections (invoice plus mark-billed) commit together or not at all.
	Update(ctx context.Context, fn func(*Document) error) error

	// Close releases any resources held by the store.
	Close() error
}
