package scheduler_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/fetcher"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
	"github.com/rohmanhakim/site-word-scanner/internal/scheduler"
	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(
	ctx context.Context,
	fetchParam fetcher.FetchParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, fetchParam)
	fetchResult := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return fetchResult, err
}

// forURL matches a FetchParam by its URL string.
func forURL(raw string) any {
	return mock.MatchedBy(func(p fetcher.FetchParam) bool {
		u := p.URL()
		return u.String() == raw
	})
}

// onPage stubs a 200 text/html response for raw.
func onPage(t *testing.T, m *fetcherMock, raw string, body string) *mock.Call {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	fetchResult := fetcher.NewFetchResultForTest(*u, []byte(body), 200, "text/html; charset=utf-8")
	return m.On("Fetch", mock.Anything, forURL(raw)).Return(fetchResult, nil)
}

func onStatus(t *testing.T, m *fetcherMock, raw string, code int) *mock.Call {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	fetchResult := fetcher.NewFetchResultForTest(*u, nil, code, "text/html")
	return m.On("Fetch", mock.Anything, forURL(raw)).Return(fetchResult, nil)
}

func onFailure(m *fetcherMock, raw string, kind fetcher.ErrorKind) *mock.Call {
	return m.On("Fetch", mock.Anything, forURL(raw)).Return(
		fetcher.FetchResult{},
		&fetcher.FetchError{Message: "simulated", Cause: kind},
	)
}

// mockFinalizer is a test double that captures final crawl statistics
type mockFinalizer struct {
	calls         int
	recordedStats *capturedStats
}

type capturedStats struct {
	seedURL          string
	totalPages       int
	totalErrors      int
	totalOccurrences int
	duration         time.Duration
}

func (m *mockFinalizer) RecordFinalCrawlStats(
	seedUrl string,
	totalPages int,
	totalErrors int,
	totalOccurrences int,
	duration time.Duration,
) {
	m.calls++
	m.recordedStats = &capturedStats{
		seedURL:          seedUrl,
		totalPages:       totalPages,
		totalErrors:      totalErrors,
		totalOccurrences: totalOccurrences,
		duration:         duration,
	}
}

// progressSpy records RecordProgress calls and ignores everything else.
type progressSpy struct {
	metadata.NoopSink
	progress [][2]int
	errors   []metadata.ErrorCause
}

func (p *progressSpy) RecordProgress(seedUrl string, visited int, remaining int) {
	p.progress = append(p.progress, [2]int{visited, remaining})
}

func (p *progressSpy) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	p.errors = append(p.errors, cause)
}

func createSchedulerForTest(
	t *testing.T,
	finalizer *mockFinalizer,
	sink metadata.MetadataSink,
	mockFetcher *fetcherMock,
) *scheduler.Scheduler {
	t.Helper()
	cfg, err := config.WithDefault().WithTimeout(time.Second).Build()
	require.NoError(t, err)
	s := scheduler.NewSchedulerWithDeps(cfg, finalizer, sink, mockFetcher)
	return &s
}

func visitedURLs(pages []result.PageResult) []string {
	urls := make([]string, len(pages))
	for i, p := range pages {
		urls[i] = p.URL
	}
	return urls
}

func fetcherResult(t *testing.T, raw string, body string, code int, contentType string) fetcher.FetchResult {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return fetcher.NewFetchResultForTest(*u, []byte(body), code, contentType)
}
