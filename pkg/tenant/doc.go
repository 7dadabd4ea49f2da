// Package tenant provides the tenant data model, the PostgreSQL-backed
// store, and the ordered resolution chain the gateway runs per request.
//
// # Resolution
//
// A classified request resolves in a fixed order: active tenant by
// subdomain when the host carried one, then active tenant by custom domain.
// ErrTenantNotFound after both lookups is a boundary condition the gateway
// handles with a redirect; any other store failure is fatal for the request.
//
// # Schema fallback
//
// PGStore tolerates deployments whose tenants table predates the settings
// column: a lookup failing with SQLSTATE 42703 (undefined_column) is
// retried once with a reduced column set, and the missing language settings
// are backfilled with DefaultLocale. Detection is by structured error code,
// never by matching error message text.
//
// # Caching
//
// A Cache (in-process TTL map, or RedisCache shared between replicas) can
// be put in front of the store via WithCache. Only positive results are
// cached so newly created stores are addressable immediately.
package tenant
