// Package store defines the durable persistence contract for the service's
// collections. A collection is always loaded and rewritten wholesale, which
// keeps every backend interchangeable with the original flat-file layout.
package store

import "context"

// Collection is a durable store for one collection of records.
//
// Load reads the entire collection; a missing backing store yields an empty
// slice, not an error. Save replaces the entire collection; implementations
// must make the replacement atomic so readers never observe a torn state.
type Collection[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}
