package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a client-generated id for each write request.
	RequestIDHeaderName = "X-Request-Id"
)
