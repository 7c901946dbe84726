// Package common defines shared constants and sentinel errors used across
// the podlift client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Local data errors.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")

	// Edit-session flow control.
	ErrNotEditing = errors.New("no active edit buffer")
	ErrOffline    = errors.New("offline: edits require a server connection")
)
