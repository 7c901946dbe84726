package api

import "fmt"

// Error is a server-side rejection of a request. Detail carries the
// human-readable explanation from the response body, shown to the user as-is.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
