package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(0)

	_, ok := s.Get(ResourceKey("campaigns", "42"))
	require.False(t, ok)

	s.Set(ResourceKey("campaigns", "42"), "v1")

	e, ok := s.Get(ResourceKey("campaigns", "42"))
	require.True(t, ok)
	assert.Equal(t, Fresh, e.Staleness)
	assert.Equal(t, "v1", e.Value)
}

func TestMemoryStore_TTLAgesEntries(t *testing.T) {
	s := NewMemoryStore(30 * time.Second)

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Set("campaigns/42", "v1")

	e, ok := s.Get("campaigns/42")
	require.True(t, ok)
	assert.Equal(t, Fresh, e.Staleness)

	s.now = func() time.Time { return base.Add(time.Minute) }
	e, ok = s.Get("campaigns/42")
	require.True(t, ok)
	assert.Equal(t, Stale, e.Staleness, "entry older than TTL must read as stale")
}

func TestMemoryStore_InvalidateDropsUnsubscribedKeys(t *testing.T) {
	s := NewMemoryStore(0)
	s.Set("campaigns/42", "v1")

	s.Invalidate("campaigns/42")

	_, ok := s.Get("campaigns/42")
	assert.False(t, ok, "unsubscribed keys are dropped for lazy refetch")
}

func TestMemoryStore_InvalidateMarksSubscribedKeysStale(t *testing.T) {
	s := NewMemoryStore(0)
	s.Set("campaigns/42", "v1")

	var seen []Entry
	cancel := s.Subscribe("campaigns/42", func(e Entry) { seen = append(seen, e) })
	defer cancel()

	s.Invalidate("campaigns/42")

	e, ok := s.Get("campaigns/42")
	require.True(t, ok)
	assert.Equal(t, Stale, e.Staleness)
	assert.Equal(t, "v1", e.Value, "stale entries keep the last-known value")

	require.Len(t, seen, 1)
	assert.Equal(t, Stale, seen[0].Staleness)
}

func TestMemoryStore_SetNotifiesSubscribers(t *testing.T) {
	s := NewMemoryStore(0)

	var seen []Entry
	cancel := s.Subscribe("campaigns", func(e Entry) { seen = append(seen, e) })

	s.Set("campaigns", []string{"a"})
	require.Len(t, seen, 1)
	assert.Equal(t, Fresh, seen[0].Staleness)

	cancel()
	s.Set("campaigns", []string{"b"})
	assert.Len(t, seen, 1, "cancelled subscriptions receive no further events")
}

func TestMemoryStore_InvalidateOnlyTouchesNamedKeys(t *testing.T) {
	s := NewMemoryStore(0)
	s.Set("campaigns/1", "a")
	s.Set("campaigns/2", "b")

	s.Invalidate("campaigns/1")

	e, ok := s.Get("campaigns/2")
	require.True(t, ok)
	assert.Equal(t, Fresh, e.Staleness)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, Key("campaigns/42"), ResourceKey("campaigns", "42"))
	assert.Equal(t, Key("campaigns"), ListKey("campaigns"))
}
