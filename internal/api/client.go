// Package api implements the REST client for the podlift backend.
//
// The wire contract is deliberately small: GET /{resource}/{id} returns a
// full record, PATCH /{resource}/{id} applies exactly the fields present in
// the JSON body and leaves the rest untouched. Any non-2xx status is a
// failure; an optional "detail" or "message" body string is surfaced to the
// user verbatim.
package api

import "context"

// Client is the transport used by all application services.
type Client interface {
	// Login authenticates with email/password and stores the token pair.
	Login(ctx context.Context, email string, password []byte) error

	// Ping checks server liveness.
	Ping(ctx context.Context) error

	// Get fetches /{resource}/{id} and decodes the JSON body into out.
	Get(ctx context.Context, resource, id string, out any) error

	// List fetches /{resource} and decodes the JSON body into out.
	List(ctx context.Context, resource string, out any) error

	// Update PATCHes /{resource}/{id} with only the given fields.
	Update(ctx context.Context, resource, id string, fields map[string]any) error

	// Tokens returns the current access/refresh token pair for persistence.
	Tokens() (access, refresh string)

	// SetTokens installs a previously persisted token pair (session resume).
	SetTokens(access, refresh string)

	// Close releases transport resources.
	Close() error
}
