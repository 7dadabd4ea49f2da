package routing

import (
	"net/url"
	"strings"
)

// LegacyCategoryPrefix is the deprecated category path shape that old
// storefront links still use.
const LegacyCategoryPrefix = "/products/category/"

// RewriteLegacyCategoryPath converts a deprecated category path into the
// canonical listing path with the category as a query parameter:
//
//	/products/category/shoes -> /products?category=shoes
//
// The second return value reports whether the path matched the legacy shape.
// Callers should redirect to the rewritten path so the client address bar
// reflects the canonical form.
func RewriteLegacyCategoryPath(path string) (string, bool) {
	if !strings.HasPrefix(path, LegacyCategoryPrefix) {
		return path, false
	}

	slug := strings.Trim(strings.TrimPrefix(path, LegacyCategoryPrefix), "/")
	if slug == "" {
		return path, false
	}

	return "/products?category=" + url.QueryEscape(slug), true
}
