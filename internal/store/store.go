// Package store persists recipe records.
package store

import (
	"context"

	"recipeshare/internal/recipe"
)

// RecipeStore is the narrow interface the handlers need from the persistence
// layer: write one record, page through records of one type newest-first.
type RecipeStore interface {
	// Put writes a record. The (type, id) pair is the primary key; a clash
	// is an error.
	Put(ctx context.Context, rec recipe.Record) error

	// Query returns up to limit records of the given type ordered by id
	// descending, starting strictly after startKey when it is non-empty.
	// nextKey is non-empty only when more records remain; it round-trips
	// as an opaque cursor into the next call's startKey.
	Query(ctx context.Context, recordType string, limit int, startKey string) (records []recipe.Record, nextKey string, err error)
}
