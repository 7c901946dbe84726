package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFetch_FreshHitSkipsFetch(t *testing.T) {
	store := NewMemoryStore(0)
	store.Set("campaigns/42", "cached")
	r := NewResolver(store)

	var calls int32
	v, err := GetOrFetch(context.Background(), r, "campaigns/42", func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "fetched", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", v)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGetOrFetch_MissFetchesAndCaches(t *testing.T) {
	store := NewMemoryStore(0)
	r := NewResolver(store)

	v, err := GetOrFetch(context.Background(), r, "campaigns/42", func(ctx context.Context) (string, error) {
		return "fetched", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fetched", v)

	e, ok := store.Get("campaigns/42")
	require.True(t, ok)
	assert.Equal(t, Fresh, e.Staleness)
	assert.Equal(t, "fetched", e.Value)
}

func TestGetOrFetch_StaleEntryRefetched(t *testing.T) {
	store := NewMemoryStore(0)
	store.Set("campaigns/42", "old")
	cancel := store.Subscribe("campaigns/42", func(Entry) {})
	defer cancel()
	store.Invalidate("campaigns/42")

	r := NewResolver(store)
	v, err := GetOrFetch(context.Background(), r, "campaigns/42", func(ctx context.Context) (string, error) {
		return "new", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestGetOrFetch_ErrorLeavesCacheUntouched(t *testing.T) {
	store := NewMemoryStore(0)
	r := NewResolver(store)

	_, err := GetOrFetch(context.Background(), r, "campaigns/42", func(ctx context.Context) (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)

	_, ok := store.Get("campaigns/42")
	assert.False(t, ok)
}

func TestGetOrFetch_ConcurrentCallersShareOneFetch(t *testing.T) {
	store := NewMemoryStore(0)
	r := NewResolver(store)

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "fetched", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = GetOrFetch(context.Background(), r, "campaigns/42", fetch)
		}(i)
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent fetches of one key must coalesce")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "fetched", results[i])
	}
}
