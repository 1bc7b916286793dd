package urlutil

import (
	"net/url"
	"strings"
)

const defaultScheme = "https"

// Canonicalize maps equivalent URL spellings to a single canonical string,
// the identity used for crawl deduplication. It returns false when the input
// cannot be parsed or when its hostname contains no dot.
//
// The normalization follows these rules:
//   - A missing http(s) scheme defaults to https
//   - Scheme and host are lowercased
//   - Default ports are omitted (e.g., :80 for http, :443 for https)
//   - An empty path becomes the root "/"
//   - Trailing literal slashes are removed, except for the root "/";
//     an escaped "%2F" is part of the segment and is kept
//   - Fragments are removed
//   - Query strings are kept verbatim
//
// Properties:
//   - Pure: no state, no memory, no network
//   - Idempotent: Canonicalize(Canonicalize(u)) == Canonicalize(u)
func Canonicalize(rawURL string) (string, bool) {
	parsed, ok := Parse(rawURL)
	if !ok {
		return "", false
	}
	canonical := CanonicalizeURL(*parsed)
	return canonical.String(), true
}

// Parse turns a raw string into an absolute URL, prefixing the default
// scheme when the string does not start with http:// or https://.
// Hostnames without a dot (e.g. "localhost") are rejected.
func Parse(rawURL string) (*url.URL, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, false
	}
	if !HasHTTPScheme(rawURL) {
		rawURL = defaultScheme + "://" + rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, false
	}
	if !strings.Contains(parsed.Hostname(), ".") {
		return nil, false
	}
	return parsed, true
}

// HasHTTPScheme reports whether rawURL starts with http:// or https://,
// ignoring case.
func HasHTTPScheme(rawURL string) bool {
	lower := lowerASCII(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// CanonicalizeURL applies the canonical rules to an already parsed URL.
// The input is not mutated.
func CanonicalizeURL(sourceUrl url.URL) url.URL {
	canonical := sourceUrl

	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	// Work on the escaped form so an encoded "%2F" is never mistaken for
	// a path separator.
	escapedPath := canonical.EscapedPath()
	if escapedPath == "" {
		escapedPath = "/"
	}
	escapedPath = stripTrailingSlash(escapedPath)
	if path, err := url.PathUnescape(escapedPath); err == nil {
		canonical.Path = path
		canonical.RawPath = escapedPath
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""

	return canonical
}

// Domain returns the lowercased hostname of rawURL with a leading "www."
// removed. It fails under the same conditions as Parse.
func Domain(rawURL string) (string, bool) {
	parsed, ok := Parse(rawURL)
	if !ok {
		return "", false
	}
	return DomainOf(*parsed), true
}

// DomainOf is Domain for an already parsed URL.
func DomainOf(u url.URL) string {
	return strings.TrimPrefix(lowerASCII(u.Hostname()), "www.")
}

// SameDomain reports whether both URLs resolve to the same www-stripped
// domain. Unparsable URLs never match.
func SameDomain(a, b string) bool {
	domainA, ok := Domain(a)
	if !ok {
		return false
	}
	domainB, ok := Domain(b)
	if !ok {
		return false
	}
	return domainA == domainB
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}

	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// stripTrailingSlash removes trailing slashes from an escaped path, keeping
// a lone "/". Removing every one of them keeps Canonicalize idempotent.
func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
