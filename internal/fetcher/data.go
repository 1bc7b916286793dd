package fetcher

import (
	"net/url"
	"time"
)

// HTTP boundary

type FetchParam struct {
	fetchUrl  url.URL
	userAgent string
	timeout   time.Duration
}

// NewFetchParam describes a single page request. A zero timeout means the
// request is bounded only by the caller's context.
func NewFetchParam(fetchUrl url.URL, userAgent string, timeout time.Duration) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (p FetchParam) URL() url.URL {
	return p.fetchUrl
}

func (p FetchParam) UserAgent() string {
	return p.userAgent
}

func (p FetchParam) Timeout() time.Duration {
	return p.timeout
}

type FetchResult struct {
	url  url.URL
	body []byte
	meta ResponseMeta
}

// URL is the final URL after redirects were followed.
func (f *FetchResult) URL() url.URL {
	return f.url
}

// Body is the decoded response body.
func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) IsSuccess() bool {
	return f.meta.statusCode >= 200 && f.meta.statusCode < 300
}

func (f *FetchResult) ContentType() string {
	return f.meta.contentType
}

// SizeByte is the number of body bytes received on the wire, before
// decompression.
func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

type ResponseMeta struct {
	statusCode          int
	contentType         string
	transferredSizeByte uint64
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url url.URL,
	body []byte,
	statusCode int,
	contentType string,
) FetchResult {
	return FetchResult{
		url:  url,
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			contentType:         contentType,
			transferredSizeByte: uint64(len(body)),
		},
	}
}
