package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/cache"
	"github.com/podlift/podlift/internal/common"
	"github.com/podlift/podlift/internal/domain"
	"github.com/podlift/podlift/internal/logging"
	"github.com/podlift/podlift/internal/notify"
)

type updateCall struct {
	resource string
	id       string
	fields   map[string]any
}

type fakeAPI struct {
	api.Client

	mu        sync.Mutex
	records   map[string]any // "resource/id" -> record
	lists     map[string]any // "resource" -> slice
	getErr    error
	getCalls  int
	listCalls int
	updates   []updateCall
	updateErr error
	pingErr   error
	loginErr  error
	access    string
	refresh   string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{records: map[string]any{}, lists: map[string]any{}}
}

func (f *fakeAPI) Get(_ context.Context, resource, id string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return f.getErr
	}
	v, ok := f.records[resource+"/"+id]
	if !ok {
		return common.ErrNotFound
	}
	return reencode(v, out)
}

func (f *fakeAPI) List(_ context.Context, resource string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	v, ok := f.lists[resource]
	if !ok {
		return common.ErrNotFound
	}
	return reencode(v, out)
}

func (f *fakeAPI) Update(_ context.Context, resource, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{resource: resource, id: id, fields: fields})
	return f.updateErr
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) Login(_ context.Context, _ string, _ []byte) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.access, f.refresh = "at-1", "rt-1"
	return nil
}

func (f *fakeAPI) Tokens() (string, string) { return f.access, f.refresh }

func (f *fakeAPI) SetTokens(access, refresh string) { f.access, f.refresh = access, refresh }

func reencode(v, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

type memStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemStore() *memStore { return &memStore{m: map[string][]byte{}} }

func (s *memStore) Save(_ context.Context, key string, value []byte, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = map[string][]byte{}
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type env struct {
	client    *fakeAPI
	snapshots *memStore
	queue     *notify.Queue
	deps      Deps
	online    bool
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		client:    newFakeAPI(),
		snapshots: newMemStore(),
		queue:     notify.NewQueue(16),
		online:    true,
	}
	e.deps = Deps{
		Client:    e.client,
		Resolver:  cache.NewResolver(cache.NewMemoryStore(time.Minute)),
		Snapshots: e.snapshots,
		Notifier:  e.queue,
		Log:       testLogger(),
		Online:    func() bool { return e.online },
	}
	return e
}

func TestCampaignService_Get_CachesAndSnapshots(t *testing.T) {
	e := newEnv(t)
	e.client.records["campaigns/c-1"] = domain.Campaign{ID: "c-1", Name: "Spring Launch"}
	svc := NewCampaignService(e.deps)
	ctx := context.Background()

	got, err := svc.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Spring Launch", got.Name)

	_, err = svc.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, e.client.getCalls, "second read is served from the cache")

	snap, err := e.snapshots.Get(ctx, "campaigns/c-1")
	require.NoError(t, err)
	assert.NotNil(t, snap, "a successful fetch leaves a snapshot behind")
}

func TestCampaignService_List(t *testing.T) {
	e := newEnv(t)
	e.client.lists["campaigns"] = []domain.Campaign{{ID: "c-1"}, {ID: "c-2"}}
	svc := NewCampaignService(e.deps)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-2", got[1].ID)
}

func TestCampaignService_OfflineServesSnapshot(t *testing.T) {
	e := newEnv(t)
	e.online = false
	b, _ := json.Marshal(domain.Campaign{ID: "c-1", Name: "Cached Launch"})
	require.NoError(t, e.snapshots.Set(context.Background(), "campaigns/c-1", b))
	svc := NewCampaignService(e.deps)

	got, err := svc.Get(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Launch", got.Name)
	assert.Equal(t, 0, e.client.getCalls, "offline reads never touch the network")

	_, err = svc.Get(context.Background(), "c-9")
	assert.ErrorIs(t, err, common.ErrLocalDataNotAvailable)
}

func TestCampaignService_UnreachableFallsBackToSnapshot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b, _ := json.Marshal(domain.Campaign{ID: "c-1", Name: "Cached Launch"})
	require.NoError(t, e.snapshots.Set(ctx, "campaigns/c-1", b))
	svc := NewCampaignService(e.deps)

	// Online according to the monitor, but the request itself fails.
	e.client.getErr = fmt.Errorf("dial: %w", common.ErrUnavailable)
	got, err := svc.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Launch", got.Name)
}

func TestCampaignService_NotFoundIsNotPaperedOver(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	b, _ := json.Marshal(domain.Campaign{ID: "c-1", Name: "Cached Launch"})
	require.NoError(t, e.snapshots.Set(ctx, "campaigns/c-1", b))
	svc := NewCampaignService(e.deps)

	_, err := svc.Get(ctx, "c-1")
	assert.ErrorIs(t, err, common.ErrNotFound, "a definite 404 does not fall back to the snapshot")
}

func TestEntity_Edit_OfflineIsReadOnly(t *testing.T) {
	e := newEnv(t)
	e.online = false
	svc := NewCampaignService(e.deps)

	_, err := svc.Edit("c-1")
	assert.ErrorIs(t, err, common.ErrOffline)
}

func TestPlacementService_Advance(t *testing.T) {
	e := newEnv(t)
	e.client.records["placements/p-1"] = domain.Placement{
		ID:     "p-1",
		Status: domain.PlacementProspect,
	}
	svc := NewPlacementService(e.deps)

	require.NoError(t, svc.Advance(context.Background(), "p-1"))

	require.Len(t, e.client.updates, 1)
	call := e.client.updates[0]
	assert.Equal(t, "placements", call.resource)
	assert.Equal(t, "p-1", call.id)
	assert.Equal(t, map[string]any{"status": "pitched"}, call.fields)

	items := e.queue.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, "placement saved", items[0].Message)
}

func TestPlacementService_Advance_LastStage(t *testing.T) {
	e := newEnv(t)
	e.client.records["placements/p-1"] = domain.Placement{
		ID:     "p-1",
		Status: domain.PlacementLive,
	}
	svc := NewPlacementService(e.deps)

	err := svc.Advance(context.Background(), "p-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already live")
	assert.Empty(t, e.client.updates)
}

func TestSettingsService_UsesFixedID(t *testing.T) {
	e := newEnv(t)
	e.client.records["settings/me"] = domain.Settings{ID: "me", FullName: "Jane Doe", Timezone: "UTC"}
	svc := NewSettingsService(e.deps)
	ctx := context.Background()

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.FullName)

	sess, err := svc.Edit()
	require.NoError(t, err)
	require.NoError(t, sess.EnterEdit(ctx, ""))
	require.NoError(t, sess.Mutate(func(b *domain.SettingsBuffer) { b.WeeklyDigest = true }))
	require.NoError(t, sess.Submit(ctx))

	require.Len(t, e.client.updates, 1)
	assert.Equal(t, "settings/me", e.client.updates[0].resource+"/"+e.client.updates[0].id)
	assert.Equal(t, true, e.client.updates[0].fields["weekly_digest"])
}

func TestEntity_Watch_NotifiesOnInvalidation(t *testing.T) {
	e := newEnv(t)
	e.client.records["campaigns/c-1"] = domain.Campaign{ID: "c-1", Name: "Spring Launch"}
	svc := NewCampaignService(e.deps)
	ctx := context.Background()

	_, err := svc.Get(ctx, "c-1")
	require.NoError(t, err)

	var events []cache.Entry
	cancel := svc.Watch("c-1", func(entry cache.Entry) { events = append(events, entry) })
	defer cancel()

	sess, err := svc.Edit("c-1")
	require.NoError(t, err)
	require.NoError(t, sess.EnterEdit(ctx, domain.CampaignSummary))
	require.NoError(t, sess.Mutate(func(b *domain.CampaignBuffer) { b.Name = "Autumn Launch" }))
	require.NoError(t, sess.Submit(ctx))

	require.NotEmpty(t, events)
	assert.Equal(t, cache.Stale, events[len(events)-1].Staleness, "a confirmed save marks the watched record stale")
}

func TestAuthService_LoginPersistsAndResumes(t *testing.T) {
	e := newEnv(t)
	meta := newMemStore()
	auth := NewAuthService(e.client, meta, e.snapshots, testLogger())
	ctx := context.Background()

	require.NoError(t, auth.Login(ctx, "host@podlift.example", []byte("secret")))

	email, err := auth.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "host@podlift.example", email)

	// A new client resumes from the stored tokens.
	fresh := newFakeAPI()
	auth2 := NewAuthService(fresh, meta, e.snapshots, testLogger())
	ok, err := auth2.Resume(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	access, refresh := fresh.Tokens()
	assert.Equal(t, "at-1", access)
	assert.Equal(t, "rt-1", refresh)
}

func TestAuthService_ResumeWithoutStoredSession(t *testing.T) {
	auth := NewAuthService(newFakeAPI(), newMemStore(), newMemStore(), testLogger())

	ok, err := auth.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_LogoutWipesLocalState(t *testing.T) {
	e := newEnv(t)
	meta := newMemStore()
	auth := NewAuthService(e.client, meta, e.snapshots, testLogger())
	ctx := context.Background()

	require.NoError(t, auth.Login(ctx, "host@podlift.example", []byte("secret")))
	require.NoError(t, e.snapshots.Set(ctx, "campaigns/c-1", []byte(`{}`)))

	require.NoError(t, auth.Logout(ctx))

	access, refresh := e.client.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	stored, err := meta.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Nil(t, stored)
	snap, err := e.snapshots.Get(ctx, "campaigns/c-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMonitor_FlipsAndNotifies(t *testing.T) {
	client := newFakeAPI()
	m := NewMonitor(client, testLogger())

	var flips []bool
	m.OnChange = func(online bool) { flips = append(flips, online) }

	assert.True(t, m.Check(context.Background()))
	assert.Empty(t, flips, "no flip while the state is unchanged")

	client.pingErr = fmt.Errorf("dial: %w", common.ErrUnavailable)
	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.Online())

	client.pingErr = nil
	assert.True(t, m.Check(context.Background()))
	assert.Equal(t, []bool{false, true}, flips)
}
