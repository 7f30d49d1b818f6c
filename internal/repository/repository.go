// Package repository implements uniform CRUD over the named collections of
// the shared document. Every operation is a full load-mutate-save cycle
// against the store; the store serializes those cycles.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrcarwash/backend/internal/storage"
)

// Sentinel errors for repository failures.
var (
	// ErrNotFound means no record matches the given key.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey means a create collided with an existing natural key.
	ErrDuplicateKey = errors.New("already exists")
)

// Repository is generic CRUD over one collection. It is parameterized by the
// record type T and its key type K, and configured with a collection
// accessor, a key extractor and (for auto-increment collections) id get/set
// functions.
type Repository[T any, K comparable] struct {
	store storage.Store

	// name labels the collection in error messages ("cliente", "tarifa").
	name string

	// slot returns the collection slice inside a document.
	slot func(*storage.Document) *[]T

	// keyOf extracts the primary key used by Get, Update and Delete.
	keyOf func(*T) K

	// idOf and setID are non-nil only for auto-increment collections.
	// Create then assigns max(existing ids)+1, so ids strictly increase and
	// are never reused, even after deletions.
	idOf  func(*T) int
	setID func(*T, int)

	// lastID is the high-water mark of ids handed out by this repository.
	// Without it, deleting the record with the max id and creating again
	// would hand the same id out twice. Only touched inside store.Update,
	// which serializes all writers.
	lastID int
}

// List returns the full collection in insertion order.
func (r *Repository[T, K]) List(ctx context.Context) ([]T, error) {
	doc, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return *r.slot(doc), nil
}

// Get returns the record with the given key.
func (r *Repository[T, K]) Get(ctx context.Context, key K) (T, error) {
	var out T
	doc, err := r.store.Read(ctx)
	if err != nil {
		return out, err
	}
	rec := r.find(doc, key)
	if rec == nil {
		return out, fmt.Errorf("%s %v: %w", r.name, key, ErrNotFound)
	}
	return *rec, nil
}

// Create inserts a new record. Natural-key collections reject keys that
// already exist; auto-increment collections assign the next id first.
func (r *Repository[T, K]) Create(ctx context.Context, rec T) (T, error) {
	err := r.store.Update(ctx, func(doc *storage.Document) error {
		coll := r.slot(doc)
		if r.idOf != nil {
			id := NextID(*coll, r.idOf)
			if id <= r.lastID {
				id = r.lastID + 1
			}
			r.lastID = id
			r.setID(&rec, id)
		} else {
			key := r.keyOf(&rec)
			if r.find(doc, key) != nil {
				return fmt.Errorf("%s %v: %w", r.name, key, ErrDuplicateKey)
			}
		}
		*coll = append(*coll, rec)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update applies a patch to the record with the given key and returns the
// merged result. The patch overwrites only the fields it sets.
func (r *Repository[T, K]) Update(ctx context.Context, key K, patch func(*T)) (T, error) {
	var out T
	err := r.store.Update(ctx, func(doc *storage.Document) error {
		rec := r.find(doc, key)
		if rec == nil {
			return fmt.Errorf("%s %v: %w", r.name, key, ErrNotFound)
		}
		patch(rec)
		out = *rec
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete removes and returns the record with the given key. It does not
// check dependent records in other collections.
func (r *Repository[T, K]) Delete(ctx context.Context, key K) (T, error) {
	var out T
	err := r.store.Update(ctx, func(doc *storage.Document) error {
		coll := r.slot(doc)
		for i := range *coll {
			if r.keyOf(&(*coll)[i]) == key {
				out = (*coll)[i]
				*coll = append((*coll)[:i], (*coll)[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%s %v: %w", r.name, key, ErrNotFound)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *Repository[T, K]) find(doc *storage.Document, key K) *T {
	coll := r.slot(doc)
	for i := range *coll {
		if r.keyOf(&(*coll)[i]) == key {
			return &(*coll)[i]
		}
	}
	return nil
}

// NextID returns max(existing ids)+1, or 1 for an empty collection. Ids are
// gap-tolerant: deleting the max and creating again still moves forward
// within a single store lifetime.
func NextID[T any](coll []T, idOf func(*T) int) int {
	next := 1
	for i := range coll {
		if id := idOf(&coll[i]); id >= next {
			next = id + 1
		}
	}
	return next
}
