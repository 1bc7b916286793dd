package fetcher

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
)

/*
Responsibilities

- Perform HTTP GET requests
- Apply headers and timeouts
- Follow redirects
- Decode compressed bodies
- Classify transport failures

Fetch Semantics

- Any HTTP response is a successful fetch, whatever its status code
- Only failures to obtain a response become a FetchError
- A body that arrived but cannot be decoded is recorded and dropped;
  the status code is kept
- Every attempt is logged with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
) HtmlFetcher {
	return NewHtmlFetcherWithClient(metadataSink, &http.Client{})
}

// NewHtmlFetcherWithClient lets callers supply their own transport,
// e.g. an httptest server client.
func NewHtmlFetcherWithClient(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()

	result, err := h.performFetch(ctx, fetchParam)

	duration := time.Since(startTime)

	var statusCode int
	var contentType string
	var sizeByte uint64
	if err == nil {
		statusCode = result.Code()
		contentType = result.ContentType()
		sizeByte = result.SizeByte()
	}

	h.metadataSink.RecordFetch(
		fetchParam.fetchUrl.String(),
		statusCode,
		duration,
		contentType,
		sizeByte,
	)

	if err != nil {
		h.recordFetchError(callerMethod, fetchParam.fetchUrl, err)
		return FetchResult{}, err
	}

	return result, nil
}

func (h *HtmlFetcher) recordFetchError(callerMethod string, fetchUrl url.URL, err failure.ClassifiedError) {
	var fetchError *FetchError
	if errors.As(err, &fetchError) {
		h.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
				metadata.NewAttr(metadata.AttrErrorKind, string(fetchError.Kind())),
			},
		)
	}
}

func (h *HtmlFetcher) recordDecodeError(fetchUrl url.URL, encoding string, err error) {
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		"HtmlFetcher.Fetch",
		metadata.CauseContentInvalid,
		fmt.Sprintf("cannot decode %q body: %v", encoding, err),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
			metadata.NewAttr(metadata.AttrContentEncoding, encoding),
		},
	)
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, *FetchError) {
	if fetchParam.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fetchParam.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchParam.fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, newFetchError(err)
	}

	for key, value := range requestHeaders(fetchParam.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, newFetchError(err)
	}
	defer resp.Body.Close()

	// The deadline also covers reading the body. A failed read is a
	// transport failure.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, newFetchError(err)
	}

	finalUrl := fetchParam.fetchUrl
	if resp.Request != nil && resp.Request.URL != nil {
		finalUrl = *resp.Request.URL
	}

	// The server answered, so its status is kept even when the body
	// cannot be decoded.
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	body, err := decodeBody(encoding, raw)
	if err != nil {
		h.recordDecodeError(finalUrl, encoding, err)
		body = []byte{}
	}

	return FetchResult{
		url:  finalUrl,
		body: body,
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			contentType:         resp.Header.Get("Content-Type"),
			transferredSizeByte: uint64(len(raw)),
		},
	}, nil
}

// decodeBody undoes Content-Encoding. Accept-Encoding is set explicitly,
// so net/http leaves decompression to us. An empty body is empty content
// whatever the encoding claims.
func decodeBody(encoding string, raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return []byte{}, nil
	}
	switch encoding {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	case "deflate":
		return inflate(raw)
	default:
		return raw, nil
	}
}

// inflate reads a zlib-wrapped deflate stream, falling back to raw
// deflate, which some servers send instead.
func inflate(raw []byte) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
		defer zr.Close()
		if body, err := io.ReadAll(zr); err == nil {
			return body, nil
		}
	}
	fl := flate.NewReader(bytes.NewReader(raw))
	defer fl.Close()
	return io.ReadAll(fl)
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Accept-Encoding": "gzip, deflate, br",
	}
}
