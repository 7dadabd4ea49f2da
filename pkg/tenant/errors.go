package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no active tenant matches the lookup.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrMembershipNotFound is returned when no active membership exists for
	// a (tenant, user) pair.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrStoreFailure wraps backing-store errors that are not recoverable by
	// the schema fallback.
	ErrStoreFailure = errors.New("tenant store failure")

	// ErrNoTenantInContext is returned when a handler requires a tenant but
	// the gateway did not attach one.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
