// Package session implements the edit-session state machine wrapped around a
// single record: Viewing until an edit begins, Editing while a working copy
// accumulates changes, Submitting while exactly one save is in flight.
//
// The server stays the source of truth. A successful save never patches the
// cache with local data; it invalidates the record's cache keys so the next
// read refetches the confirmed state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/cache"
	"github.com/podlift/podlift/internal/common"
	"github.com/podlift/podlift/internal/domain"
	"github.com/podlift/podlift/internal/logging"
	"github.com/podlift/podlift/internal/notify"
)

type State int

const (
	Viewing State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "viewing"
	}
}

// Buffer is the working copy of one record section. Implementations live in
// the domain package; Validate and Payload only consider the fields of the
// section the buffer was seeded for.
type Buffer[S ~string] interface {
	Validate(section S) error
	Payload(section S) map[string]any
}

// Config wires a session to one concrete record.
type Config[R domain.Record, B Buffer[S], S ~string] struct {
	// Label names the record in notifications ("campaign", "media kit").
	Label    string
	Resource string
	ID       string

	// Sections is the closed set of editable sections. The empty section
	// always means the whole record and needs no entry here.
	Sections []S

	// Fetch loads the record from the server; it runs through the cache.
	Fetch func(ctx context.Context) (R, error)

	// Seed builds the working copy for one section from the current record.
	Seed func(r R, section S) B

	// DependentKeys are invalidated together with the record's own key after
	// a confirmed save (typically the resource's list key).
	DependentKeys []cache.Key
}

// Session drives edits of one record. All methods are safe for concurrent
// use; at most one save is in flight at any time.
type Session[R domain.Record, B Buffer[S], S ~string] struct {
	cfg      Config[R, B, S]
	api      api.Client
	resolver *cache.Resolver
	notifier notify.Notifier
	log      logging.Logger

	mu        sync.Mutex
	state     State
	section   S
	buffer    B
	hasBuffer bool
	valErr    error
}

func New[R domain.Record, B Buffer[S], S ~string](
	cfg Config[R, B, S],
	client api.Client,
	resolver *cache.Resolver,
	notifier notify.Notifier,
	log logging.Logger,
) *Session[R, B, S] {
	return &Session[R, B, S]{
		cfg:      cfg,
		api:      client,
		resolver: resolver,
		notifier: notifier,
		log:      log.With("resource", cfg.Resource, "id", cfg.ID),
	}
}

func (s *Session[R, B, S]) key() cache.Key {
	return cache.ResourceKey(s.cfg.Resource, s.cfg.ID)
}

func (s *Session[R, B, S]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Section returns the section under edit. ok is false while Viewing.
func (s *Session[R, B, S]) Section() (section S, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section, s.state != Viewing
}

// Buffer returns the current working copy. ok is false while Viewing.
func (s *Session[R, B, S]) Buffer() (buf B, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer, s.hasBuffer
}

// ValidationError returns the error from the last rejected Submit, cleared by
// the next Mutate, Cancel, or successful save.
func (s *Session[R, B, S]) ValidationError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valErr
}

// Record returns the session's record through the cache: a fresh cached value
// is served as-is, anything else is refetched.
func (s *Session[R, B, S]) Record(ctx context.Context) (R, error) {
	return cache.GetOrFetch(ctx, s.resolver, s.key(), s.cfg.Fetch)
}

// EnterEdit seeds a working copy for section and moves to Editing. The empty
// section edits the whole record. While a save is in flight the call is a
// silent no-op. Entering an edit while already Editing replaces the working
// copy, discarding unsaved changes.
func (s *Session[R, B, S]) EnterEdit(ctx context.Context, section S) error {
	if section != "" && !s.validSection(section) {
		return fmt.Errorf("unknown section %q", string(section))
	}

	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		s.log.Debug(ctx, "edit request ignored while save in flight", "section", string(section))
		return nil
	}
	s.mu.Unlock()

	r, err := s.Record(ctx)
	if err != nil {
		return fmt.Errorf("loading %s/%s: %w", s.cfg.Resource, s.cfg.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return nil
	}
	s.section = section
	s.buffer = s.cfg.Seed(r, section)
	s.hasBuffer = true
	s.state = Editing
	s.valErr = nil
	s.log.Debug(ctx, "entered edit mode", "section", string(section))
	return nil
}

func (s *Session[R, B, S]) validSection(section S) bool {
	for _, v := range s.cfg.Sections {
		if v == section {
			return true
		}
	}
	return false
}

// Mutate applies fn to the working copy. The buffer is only ever touched
// through Mutate, so edits cannot race a snapshot taken by Submit.
func (s *Session[R, B, S]) Mutate(fn func(B)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Editing {
		return common.ErrNotEditing
	}
	fn(s.buffer)
	s.valErr = nil
	return nil
}

// Cancel discards the working copy and returns to Viewing. The server was
// never contacted, so the cache is untouched. Ignored while a save is in
// flight.
func (s *Session[R, B, S]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return
	}
	var zero B
	s.state = Viewing
	s.buffer = zero
	s.hasBuffer = false
	s.valErr = nil
}

// Submit validates the working copy and sends exactly the active section's
// fields to the server.
//
// Validation failure keeps the session Editing with the buffer intact and no
// request sent. While a save is already in flight Submit returns nil without
// issuing a second request. A rejected save keeps the buffer for correction
// and surfaces the server's message; a confirmed save discards the buffer and
// invalidates the record's cache keys.
func (s *Session[R, B, S]) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case Submitting:
		s.mu.Unlock()
		return nil
	case Viewing:
		s.mu.Unlock()
		return common.ErrNotEditing
	}

	if err := s.buffer.Validate(s.section); err != nil {
		s.valErr = err
		s.mu.Unlock()
		return err
	}

	payload := s.buffer.Payload(s.section)
	s.state = Submitting
	s.mu.Unlock()

	err := s.api.Update(ctx, s.cfg.Resource, s.cfg.ID, payload)

	s.mu.Lock()
	if err != nil {
		s.state = Editing
		s.mu.Unlock()
		s.log.Error(ctx, "save rejected", "error", err)
		s.notifier.Error(fmt.Sprintf("could not save %s: %s", s.cfg.Label, err.Error()))
		return fmt.Errorf("updating %s/%s: %w", s.cfg.Resource, s.cfg.ID, err)
	}
	var zero B
	s.state = Viewing
	s.buffer = zero
	s.hasBuffer = false
	s.valErr = nil
	s.mu.Unlock()

	keys := append([]cache.Key{s.key()}, s.cfg.DependentKeys...)
	s.resolver.Store().Invalidate(keys...)
	s.log.Info(ctx, "save confirmed", "invalidated", len(keys))
	s.notifier.Success(s.cfg.Label + " saved")
	return nil
}
