package routing

import "net/url"

// IsSelfReferral reports whether the request was referred by the exact same
// host and path it is targeting. It is a circuit breaker for redirect loops:
// when true the caller must pass the request through untouched instead of
// issuing another redirect. It deliberately matches a single hop only.
func IsSelfReferral(host, path, referer string) bool {
	if referer == "" {
		return false
	}

	ref, err := url.Parse(referer)
	if err != nil {
		return false
	}

	return ref.Host == host && ref.Path == path
}
