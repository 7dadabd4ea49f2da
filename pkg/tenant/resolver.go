package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/aluro/storegate/pkg/routing"
)

// AccessMethod records how a request reached its tenant.
type AccessMethod string

const (
	AccessSubdomain    AccessMethod = "subdomain"
	AccessCustomDomain AccessMethod = "custom-domain"
)

// Resolution is a successfully resolved tenant plus the access method.
type Resolution struct {
	Tenant *Tenant
	Method AccessMethod
}

// Resolver runs the ordered lookup chain for a classified request: by
// subdomain first when the classification carries one, then by custom
// domain. At most two primary lookups per request; the store may add one
// schema-fallback retry per lookup, nothing beyond that.
type Resolver struct {
	store Store
	cache Cache
	ttl   time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache enables caching of positive resolutions with the given TTL.
func WithCache(cache Cache, ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.cache = cache
		r.ttl = ttl
	}
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a classification to a tenant.
//
// Returns ErrTenantNotFound when neither lookup matches; the gateway turns
// that into a redirect, not an error page. Any other failure wraps
// ErrStoreFailure and is fatal for the request.
func (r *Resolver) Resolve(ctx context.Context, c routing.Classification) (Resolution, error) {
	if c.Subdomain != "" {
		res, err := r.lookup(ctx, "subdomain:"+c.Subdomain, AccessSubdomain, func() (*Tenant, error) {
			return r.store.GetBySubdomain(ctx, c.Subdomain)
		})
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrTenantNotFound) {
			return Resolution{}, err
		}
		// No tenant owns the subdomain; the host may still be a custom
		// domain that happens to look like one.
	}

	return r.lookup(ctx, "domain:"+c.Host, AccessCustomDomain, func() (*Tenant, error) {
		return r.store.GetByDomain(ctx, c.Host)
	})
}

func (r *Resolver) lookup(ctx context.Context, key string, method AccessMethod, load func() (*Tenant, error)) (Resolution, error) {
	if r.cache != nil {
		if t, ok := r.cache.Get(ctx, key); ok {
			return Resolution{Tenant: t, Method: method}, nil
		}
	}

	t, err := load()
	if err != nil {
		return Resolution{}, err
	}

	if r.cache != nil {
		r.cache.Set(ctx, key, t, r.ttl)
	}
	return Resolution{Tenant: t, Method: method}, nil
}
