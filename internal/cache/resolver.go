package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Resolver answers reads through the cache: fresh hits are served from the
// store, everything else goes to the network exactly once per key, no matter
// how many screens ask concurrently.
type Resolver struct {
	store Store
	group singleflight.Group
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Store exposes the underlying cache for invalidation and subscriptions.
func (r *Resolver) Store() Store {
	return r.store
}

// GetOrFetch returns the cached value for key when it is fresh and of type T.
// Otherwise fetch runs (deduplicated across concurrent callers), the result
// replaces the cache entry wholesale, and the fresh value is returned.
func GetOrFetch[T any](ctx context.Context, r *Resolver, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if e, ok := r.store.Get(key); ok && e.Staleness == Fresh {
		if v, ok := e.Value.(T); ok {
			return v, nil
		}
	}

	v, err, _ := r.group.Do(string(key), func() (any, error) {
		// A concurrent caller may have refreshed the entry while this call
		// waited its turn.
		if e, ok := r.store.Get(key); ok && e.Staleness == Fresh {
			if v, ok := e.Value.(T); ok {
				return v, nil
			}
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		r.store.Set(key, fetched)
		return fetched, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}
