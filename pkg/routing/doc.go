// Package routing contains the pure request-classification primitives used
// by the tenant gateway: host classification, redirect-loop detection, and
// the legacy category path rewrite.
//
// Classification maps a raw Host header onto one of four route classes
// (main domain, tenant subdomain, custom-domain candidate, preview root)
// without performing any I/O, so the gateway can branch before touching the
// backing store. Hosts that match no known shape never produce an error;
// they degrade to a custom-domain candidate and resolution decides whether
// a tenant actually owns that domain.
//
// Example:
//
//	c := routing.NewClassifier("aluro.shop")
//	cls := c.Classify("shop1.aluro.shop:443")
//	// cls.Kind == routing.KindTenantSubdomain, cls.Subdomain == "shop1"
//
// All functions in this package are pure and safe for concurrent use.
package routing
