// Package urlnorm canonicalizes URLs into stable deduplication keys.
package urlnorm

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a URL used as a dedup key:
// scheme and host lowercased, a missing scheme defaulted to https,
// path and query kept verbatim, fragment dropped. The trailing-slash
// distinction is preserved. On unparseable input the URL is returned
// unchanged; this is a best-effort key, not a validator.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		scheme = "https"
	}
	host := strings.ToLower(u.Host)

	query := ""
	if u.RawQuery != "" {
		query = "?" + u.RawQuery
	}
	return fmt.Sprintf("%s://%s%s%s", scheme, host, u.EscapedPath(), query)
}

// HostLabel returns the URL's host with a leading "www." stripped, for
// use as a human-readable source label. Returns "source" when the URL
// has no usable host.
func HostLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "source"
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
