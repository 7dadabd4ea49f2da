// Package gateway is the request-admission layer of the storefront
// platform: every inbound request is classified by hostname, mapped to a
// tenant, authorized against that tenant's access rules, and annotated with
// the resolved context before it reaches application handlers.
//
// # Control flow
//
// A request travels a short, strictly sequential chain:
//
//	skip check -> self-referral guard -> legacy path rewrite ->
//	host classification -> [main domain: platform gate] or
//	[tenant host: resolve -> gate -> locale -> context headers] -> handler
//
// Each route class (platform, tenant admin, public storefront) has its own
// gate with three terminal states: allow, redirect, or fail. Tenant-boundary
// conditions (unknown tenant, unauthenticated, unauthorized) always resolve
// to redirects inside this layer; only configuration and backing-store
// failures produce error responses, and those are minimal plain text.
//
// # Context headers
//
// Downstream handlers learn the resolved tenant exclusively from the
// response headers this package writes (HeaderTenantID and friends) and
// from tenant.FromContext; they must not re-derive it from the hostname.
//
// # Usage
//
//	var cfg gateway.Config
//	config.MustLoad(&cfg)
//	g, err := gateway.New(cfg, store, sessions, gateway.WithLogger(log))
//	if err != nil {
//		// missing required configuration
//	}
//	r := chi.NewRouter()
//	r.Use(g.Middleware)
package gateway
