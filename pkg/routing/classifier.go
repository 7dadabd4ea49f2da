package routing

import "strings"

// Kind identifies how a request host maps onto the platform.
type Kind uint8

const (
	// KindMainDomain is the platform's own root domain (or www alias).
	KindMainDomain Kind = iota
	// KindTenantSubdomain is a tenant storefront addressed by subdomain.
	KindTenantSubdomain
	// KindCustomDomain is a host that matched no known shape and is treated
	// as a candidate custom tenant domain.
	KindCustomDomain
	// KindPreviewRoot is the bare host of a deployment preview, which acts
	// as the main domain for that preview.
	KindPreviewRoot
)

// String returns a stable label for logging.
func (k Kind) String() string {
	switch k {
	case KindMainDomain:
		return "main_domain"
	case KindTenantSubdomain:
		return "tenant_subdomain"
	case KindCustomDomain:
		return "custom_domain"
	case KindPreviewRoot:
		return "preview_root"
	default:
		return "unknown"
	}
}

// Classification is the result of classifying a request host.
// Host is always the port-stripped hostname; Subdomain is set only for
// KindTenantSubdomain. Preview marks hosts that matched the preview suffix.
type Classification struct {
	Kind      Kind
	Host      string
	Subdomain string
	Preview   bool
}

// IsTenant reports whether the classification should go through tenant
// resolution rather than the main-domain branch.
func (c Classification) IsTenant() bool {
	return c.Kind == KindTenantSubdomain || c.Kind == KindCustomDomain
}

// Classifier maps request hosts onto route classes. The zero value is not
// usable; ProductionDomain must be set.
type Classifier struct {
	// ProductionDomain is the platform root domain, e.g. "aluro.shop".
	ProductionDomain string
	// PreviewSuffix is the deployment-preview host suffix, e.g. ".vercel.app".
	PreviewSuffix string
	// DevHost is the local development host, e.g. "localhost".
	DevHost string
}

// NewClassifier creates a classifier with the default preview suffix and
// development host.
func NewClassifier(productionDomain string) Classifier {
	return Classifier{
		ProductionDomain: productionDomain,
		PreviewSuffix:    ".vercel.app",
		DevHost:          "localhost",
	}
}

// Classify maps a raw Host header onto a Classification. It never fails:
// hosts that match no known shape degrade to KindCustomDomain so resolution
// can still attempt a custom-domain lookup.
func (c Classifier) Classify(hostHeader string) Classification {
	host := stripPort(hostHeader)

	if host == c.ProductionDomain || host == "www."+c.ProductionDomain {
		return Classification{Kind: KindMainDomain, Host: host}
	}

	if c.ProductionDomain != "" && strings.HasSuffix(host, "."+c.ProductionDomain) {
		if labels := strings.Split(host, "."); len(labels) >= 3 {
			return Classification{Kind: KindTenantSubdomain, Host: host, Subdomain: labels[0]}
		}
	}

	if c.PreviewSuffix != "" && strings.HasSuffix(host, c.PreviewSuffix) {
		labels := strings.Split(host, ".")
		if len(labels) >= 4 {
			return Classification{Kind: KindTenantSubdomain, Host: host, Subdomain: labels[0], Preview: true}
		}
		return Classification{Kind: KindPreviewRoot, Host: host, Preview: true}
	}

	if host == c.DevHost {
		return Classification{Kind: KindMainDomain, Host: host}
	}

	if strings.Contains(host, "."+c.DevHost) {
		if labels := strings.Split(host, "."); len(labels) >= 2 {
			return Classification{Kind: KindTenantSubdomain, Host: host, Subdomain: labels[0]}
		}
	}

	return Classification{Kind: KindCustomDomain, Host: host}
}

// stripPort removes a trailing ":port" from a host header value.
func stripPort(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}
	return host
}
