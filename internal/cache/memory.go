package cache

import (
	"sync"
	"time"
)

// MemoryStore is the in-process Store used for the lifetime of one app
// session. A positive TTL ages fresh entries into stale ones so long-lived
// screens eventually refetch.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Key]Entry
	subs    map[Key]map[int]func(Entry)
	nextSub int
	ttl     time.Duration

	// now is a test seam.
	now func() time.Time
}

// NewMemoryStore creates an empty store. ttl <= 0 disables TTL aging.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[Key]Entry),
		subs:    make(map[Key]map[int]func(Entry)),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	if e.Staleness == Fresh && s.ttl > 0 && s.now().Sub(e.FetchedAt) > s.ttl {
		e.Staleness = Stale
		s.entries[key] = e
	}
	return e, true
}

func (s *MemoryStore) Set(key Key, value any) {
	s.mu.Lock()
	e := Entry{Key: key, Value: value, Staleness: Fresh, FetchedAt: s.now()}
	s.entries[key] = e
	fns := s.subscribers(key)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (s *MemoryStore) Invalidate(keys ...Key) {
	type event struct {
		fns []func(Entry)
		e   Entry
	}
	var events []event

	s.mu.Lock()
	for _, key := range keys {
		e, ok := s.entries[key]
		fns := s.subscribers(key)
		if len(fns) == 0 {
			delete(s.entries, key)
			continue
		}
		if !ok {
			e = Entry{Key: key, Staleness: Stale}
		}
		e.Staleness = Stale
		s.entries[key] = e
		events = append(events, event{fns: fns, e: e})
	}
	s.mu.Unlock()

	for _, ev := range events {
		for _, fn := range ev.fns {
			fn(ev.e)
		}
	}
}

func (s *MemoryStore) Subscribe(key Key, fn func(Entry)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(Entry))
	}
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
		if len(s.subs[key]) == 0 {
			delete(s.subs, key)
		}
	}
}

// subscribers must be called with s.mu held.
func (s *MemoryStore) subscribers(key Key) []func(Entry) {
	m := s.subs[key]
	if len(m) == 0 {
		return nil
	}
	fns := make([]func(Entry), 0, len(m))
	for _, fn := range m {
		fns = append(fns, fn)
	}
	return fns
}
