// Package cache implements the client-side query cache: the last-known value
// of every fetched server resource, keyed by resource identifier.
//
// Entries are only ever replaced wholesale by a fetch result or marked stale
// by an explicit invalidation after a confirmed write. Nothing merges a write
// response into a cached value in place.
package cache

import "time"

// Key identifies one cached resource, e.g. "campaigns/42" or "campaigns".
type Key string

// ResourceKey builds the cache key for a single record.
func ResourceKey(resource, id string) Key {
	return Key(resource + "/" + id)
}

// ListKey builds the cache key for a resource collection.
func ListKey(resource string) Key {
	return Key(resource)
}

// Staleness describes how trustworthy a cache entry currently is.
type Staleness int

const (
	// Fresh means the entry reflects the last confirmed server state.
	Fresh Staleness = iota
	// Stale means a write has invalidated the entry; it must be refetched
	// before being trusted again.
	Stale
)

func (s Staleness) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Entry is one cached resource value plus its staleness bookkeeping.
type Entry struct {
	Key       Key
	Value     any
	Staleness Staleness
	FetchedAt time.Time
}

// Store is the injectable query cache contract. Any edit session may
// invalidate any key; any subscriber observing that key is notified so it can
// refetch and re-render.
type Store interface {
	// Get returns the entry for key, if present. A returned entry may be
	// stale; callers decide whether stale data is acceptable.
	Get(key Key) (Entry, bool)

	// Set replaces the entry for key with a fresh value.
	Set(key Key, value any)

	// Invalidate marks the given keys stale. Keys nobody subscribes to are
	// dropped instead (lazy refetch on next read).
	Invalidate(keys ...Key)

	// Subscribe registers fn to run whenever key's entry changes (fresh value
	// set, or marked stale). The returned cancel removes the subscription.
	Subscribe(key Key, fn func(Entry)) (cancel func())
}
