package session

import "errors"

var (
	// ErrNoSession is returned when the request carries no usable auth session.
	ErrNoSession = errors.New("session: no session")

	// ErrNoProvider is returned when a context was built without an auth provider.
	ErrNoProvider = errors.New("session: no auth provider configured")

	// ErrStoreFailure wraps backing-store errors during session lookup.
	ErrStoreFailure = errors.New("session: store failure")
)
