package links

import (
	"net/url"
	"strings"

	"github.com/rohmanhakim/site-word-scanner/pkg/fileutil"
	"github.com/rohmanhakim/site-word-scanner/pkg/urlutil"
)

/*
Responsibilities

- Decide whether an href found on a page is worth fetching as an HTML page
- Resolve hrefs against the page they were found on
- Keep the crawl inside the seed's registrable domain

Both decisions are pure: no network access, no state. The scheduler owns
admission; this package only classifies.
*/

// excludedPrefixes are href schemes and anchors that never lead to a page.
var excludedPrefixes = []string{
	"#",
	"mailto:",
	"tel:",
	"ftp:",
	"javascript:",
	"data:",
}

// pageExtensions lists path extensions served as (or rendering to) HTML.
var pageExtensions = map[string]struct{}{
	"html": {}, "htm": {}, "xhtml": {}, "shtm": {}, "shtml": {}, "rhtml": {}, "dhtml": {}, "jhtml": {},
	"php": {}, "asp": {}, "aspx": {}, "jsp": {}, "cfm": {}, "cshtml": {},
	"py": {}, "rb": {}, "pl": {}, "cgi": {}, "do": {}, "action": {},
	"erb": {}, "ejs": {}, "vue": {}, "tsx": {}, "jsx": {},
}

// IsExcludedHref reports whether href is an in-page anchor or a non-web scheme.
func IsExcludedHref(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// IsCrawlableKind reports whether href, resolved against source, points at
// something that looks like an HTML page: a directory path, an extensionless
// last segment, or a known page extension. Malformed hrefs are not crawlable.
func IsCrawlableKind(href string, source url.URL) bool {
	href = strings.TrimSpace(href)
	if href == "" || IsExcludedHref(href) {
		return false
	}
	resolved, ok := resolve(href, source)
	if !ok {
		return false
	}
	return isPagePath(resolved.Path)
}

// ResolveSameDomainLink resolves href against source and returns its
// canonical form when it is an http(s) URL on the same domain as source.
func ResolveSameDomainLink(href string, source url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || IsExcludedHref(href) {
		return "", false
	}
	resolved, ok := resolve(href, source)
	if !ok {
		return "", false
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if urlutil.DomainOf(*resolved) != urlutil.DomainOf(source) {
		return "", false
	}
	return urlutil.Canonicalize(resolved.String())
}

func resolve(href string, source url.URL) (*url.URL, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	resolved := source.ResolveReference(ref)
	resolved.Scheme = strings.ToLower(resolved.Scheme)
	return resolved, true
}

func isPagePath(path string) bool {
	if path == "" || strings.HasSuffix(path, "/") {
		return true
	}
	lastSegment := path[strings.LastIndex(path, "/")+1:]
	if !strings.Contains(lastSegment, ".") {
		return true
	}
	ext := strings.ToLower(fileutil.GetFileExtension(lastSegment))
	if ext == "" {
		// "file." has a dot but nothing after it
		return false
	}
	_, ok := pageExtensions[ext]
	return ok
}
