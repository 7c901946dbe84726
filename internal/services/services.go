// Package services composes transport, cache, local snapshots, and edit
// sessions into the operations the CLI calls.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/cache"
	"github.com/podlift/podlift/internal/common"
	"github.com/podlift/podlift/internal/domain"
	"github.com/podlift/podlift/internal/localdata"
	"github.com/podlift/podlift/internal/logging"
	"github.com/podlift/podlift/internal/notify"
	"github.com/podlift/podlift/internal/session"
)

// Deps is the shared dependency set for all entity services.
type Deps struct {
	Client    api.Client
	Resolver  *cache.Resolver
	Snapshots localdata.SnapshotRepository
	Notifier  notify.Notifier
	Log       logging.Logger

	// Online reports connectivity. Nil means always online.
	Online func() bool
}

func (d Deps) online() bool {
	return d.Online == nil || d.Online()
}

// Entity serves reads and edit sessions for one record type. Reads go through
// the cache and fall back to the local snapshot when the server is
// unreachable; edits require a connection.
type Entity[R domain.Record, B session.Buffer[S], S ~string] struct {
	deps     Deps
	label    string
	resource string
	sections []S
	seed     func(r R, section S) B
}

func newEntity[R domain.Record, B session.Buffer[S], S ~string](
	deps Deps, label, resource string, sections []S, seed func(R, S) B,
) *Entity[R, B, S] {
	return &Entity[R, B, S]{
		deps:     deps,
		label:    label,
		resource: resource,
		sections: sections,
		seed:     seed,
	}
}

// Get returns one record, served from the cache when fresh.
func (e *Entity[R, B, S]) Get(ctx context.Context, id string) (R, error) {
	return cache.GetOrFetch(ctx, e.deps.Resolver, cache.ResourceKey(e.resource, id), e.fetch(id))
}

// List returns the full collection, served from the cache when fresh.
func (e *Entity[R, B, S]) List(ctx context.Context) ([]R, error) {
	return cache.GetOrFetch(ctx, e.deps.Resolver, cache.ListKey(e.resource), e.fetchList())
}

// Watch subscribes fn to cache changes of one record (fresh value after a
// refetch, or invalidation after a save). The returned cancel removes the
// subscription.
func (e *Entity[R, B, S]) Watch(id string, fn func(cache.Entry)) (cancel func()) {
	return e.deps.Resolver.Store().Subscribe(cache.ResourceKey(e.resource, id), fn)
}

// Edit opens an edit session for one record. Offline mode is read-only.
func (e *Entity[R, B, S]) Edit(id string) (*session.Session[R, B, S], error) {
	if !e.deps.online() {
		return nil, common.ErrOffline
	}
	cfg := session.Config[R, B, S]{
		Label:         e.label,
		Resource:      e.resource,
		ID:            id,
		Sections:      e.sections,
		Fetch:         e.fetch(id),
		Seed:          e.seed,
		DependentKeys: []cache.Key{cache.ListKey(e.resource)},
	}
	return session.New(cfg, e.deps.Client, e.deps.Resolver, e.deps.Notifier, e.deps.Log), nil
}

func (e *Entity[R, B, S]) fetch(id string) func(ctx context.Context) (R, error) {
	key := cache.ResourceKey(e.resource, id)
	return func(ctx context.Context) (R, error) {
		var r R
		if !e.deps.online() {
			return readSnapshot[R](ctx, e.deps.Snapshots, key)
		}
		if err := e.deps.Client.Get(ctx, e.resource, id, &r); err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				if snap, serr := readSnapshot[R](ctx, e.deps.Snapshots, key); serr == nil {
					e.deps.Log.Warn(ctx, "serving local snapshot, server unreachable", "key", string(key))
					return snap, nil
				}
			}
			return r, err
		}
		e.saveSnapshot(ctx, key, r)
		return r, nil
	}
}

func (e *Entity[R, B, S]) fetchList() func(ctx context.Context) ([]R, error) {
	key := cache.ListKey(e.resource)
	return func(ctx context.Context) ([]R, error) {
		var rs []R
		if !e.deps.online() {
			return readSnapshot[[]R](ctx, e.deps.Snapshots, key)
		}
		if err := e.deps.Client.List(ctx, e.resource, &rs); err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				if snap, serr := readSnapshot[[]R](ctx, e.deps.Snapshots, key); serr == nil {
					e.deps.Log.Warn(ctx, "serving local snapshot, server unreachable", "key", string(key))
					return snap, nil
				}
			}
			return nil, err
		}
		e.saveSnapshot(ctx, key, rs)
		return rs, nil
	}
}

// saveSnapshot persists the fetched value for offline reads. Failures are
// logged, never surfaced: the fetch itself succeeded.
func (e *Entity[R, B, S]) saveSnapshot(ctx context.Context, key cache.Key, v any) {
	if e.deps.Snapshots == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		e.deps.Log.Warn(ctx, "snapshot marshal failed", "key", string(key), "error", err)
		return
	}
	if err := e.deps.Snapshots.Save(ctx, string(key), b, time.Now()); err != nil {
		e.deps.Log.Warn(ctx, "snapshot save failed", "key", string(key), "error", err)
	}
}

func readSnapshot[T any](ctx context.Context, repo localdata.SnapshotRepository, key cache.Key) (T, error) {
	var v T
	if repo == nil {
		return v, common.ErrLocalDataNotAvailable
	}
	b, err := repo.Get(ctx, string(key))
	if err != nil {
		return v, err
	}
	if b == nil {
		return v, fmt.Errorf("no snapshot for %s: %w", key, common.ErrLocalDataNotAvailable)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("failed to decode snapshot[%s]: %w", key, err)
	}
	return v, nil
}
