package pg

import "errors"

var (
	// ErrFailedToParseConfig is returned for malformed connection strings.
	ErrFailedToParseConfig = errors.New("pg: failed to parse connection config")

	// ErrFailedToConnect is returned when all connection attempts fail.
	ErrFailedToConnect = errors.New("pg: failed to connect")

	// ErrFailedToMigrate wraps schema migration failures.
	ErrFailedToMigrate = errors.New("pg: failed to apply migrations")
)
