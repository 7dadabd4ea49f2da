package gateway

import (
	"net/http"

	"github.com/aluro/storegate/pkg/tenant"
)

// Response headers carrying the resolved request context. These names are a
// stable contract: downstream handlers read them instead of re-deriving the
// tenant from the hostname.
const (
	HeaderTenantID        = "X-Tenant-Id"
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
	HeaderTenantName      = "X-Tenant-Name"
	HeaderTenantDomain    = "X-Tenant-Domain"
	HeaderAccessMethod    = "X-Access-Method"
	HeaderLocale          = "X-Locale"
)

// writeRequestContext attaches the resolved tenant context to the outbound
// response. The domain header is only present when the tenant has a custom
// domain configured.
func writeRequestContext(h http.Header, t *tenant.Tenant, method tenant.AccessMethod, locale string) {
	h.Set(HeaderTenantID, t.ID.String())
	h.Set(HeaderTenantSubdomain, t.Subdomain)
	h.Set(HeaderTenantName, t.Name)
	if t.Domain != "" {
		h.Set(HeaderTenantDomain, t.Domain)
	}
	h.Set(HeaderAccessMethod, string(method))
	h.Set(HeaderLocale, locale)
}
