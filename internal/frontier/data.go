package frontier

import (
	"net/url"
)

// Crawl state & ordering

// CrawlAdmissionCandidate represents a URL that has already been
// admitted by the scheduler.
//
// Invariants:
// - targetURL is canonical; its String() is the dedup key
// - Same-domain and page-kind checks have passed
// - Frontier MUST NOT re-evaluate admission semantics
type CrawlAdmissionCandidate struct {
	targetURL url.URL
}

func NewCrawlAdmissionCandidate(targetUrl url.URL) CrawlAdmissionCandidate {
	return CrawlAdmissionCandidate{
		targetURL: targetUrl,
	}
}

func (c CrawlAdmissionCandidate) TargetURL() url.URL {
	return c.targetURL
}

// CrawlToken is a dequeued URL, ready to be fetched exactly once.
type CrawlToken struct {
	url url.URL
}

func NewCrawlToken(u url.URL) CrawlToken {
	return CrawlToken{
		url: u,
	}
}

func (t CrawlToken) URL() url.URL {
	return t.url
}
