package scheduler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/extractor"
	"github.com/rohmanhakim/site-word-scanner/internal/fetcher"
	"github.com/rohmanhakim/site-word-scanner/internal/frontier"
	"github.com/rohmanhakim/site-word-scanner/internal/links"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/internal/result"
	"github.com/rohmanhakim/site-word-scanner/pkg/urlutil"
)

/*
 Scheduler is the sole control-plane authority of a domain scan.

 Determinism and admission guarantees:
 - Scheduler is the ONLY component allowed to decide whether a URL
   may enter the crawl frontier.
 - A URL is admitted only if it is page-like, resolves to the seed's
   domain, and its canonical form is neither queued nor visited.
 - Every dequeued URL yields exactly one PageResult, appended only after
   its fetch and extraction step fully completed.
 - Pipeline stages may detect and classify failure, but never decide
   continuation or abortion. A failed page never aborts the scan.

 Traversal is strictly sequential: one fetch in flight at a time, BFS
 order, terminating when the frontier is exhausted or the context is
 cancelled between pages. An in-flight fetch is never cancelled by the
 caller; it completes or hits the configured timeout.

 Metadata emission is observational only and MUST NOT influence
 scheduling or crawl termination.
*/

type Scheduler struct {
	metadataSink   metadata.MetadataSink
	crawlFinalizer metadata.CrawlFinalizer
	htmlFetcher    fetcher.Fetcher
	extractor      extractor.OccurrenceExtractor
	userAgent      string
	timeout        time.Duration
	now            func() time.Time
}

func NewScheduler(cfg config.Config, recorder *metadata.Recorder) Scheduler {
	htmlFetcher := fetcher.NewHtmlFetcher(recorder)
	return NewSchedulerWithDeps(cfg, recorder, recorder, &htmlFetcher)
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
// This constructor allows tests to provide mock implementations of the fetcher
// and metadata interfaces without relying on real infrastructure.
func NewSchedulerWithDeps(
	cfg config.Config,
	crawlFinalizer metadata.CrawlFinalizer,
	metadataSink metadata.MetadataSink,
	htmlFetcher fetcher.Fetcher,
) Scheduler {
	return Scheduler{
		metadataSink:   metadataSink,
		crawlFinalizer: crawlFinalizer,
		htmlFetcher:    htmlFetcher,
		extractor:      extractor.NewOccurrenceExtractor(metadataSink),
		userAgent:      cfg.UserAgent(),
		timeout:        cfg.Timeout(),
		now:            time.Now,
	}
}

// ExecuteScan crawls every page reachable from seed by same-domain links
// and reports where keyword occurs. It never returns an error: an invalid
// seed yields an unsuccessful ScanResult, failed pages are recorded with
// their status.
func (s *Scheduler) ExecuteScan(ctx context.Context, seed string, keyword string) result.ScanResult {
	scanStartTime := s.now()

	canonicalSeed, ok := urlutil.Canonicalize(seed)
	if !ok {
		s.recordSeedError(seed, &SeedError{
			Message:   "seed cannot be canonicalized",
			Retryable: false,
			Cause:     ErrCauseInvalidSeed,
		})
		s.crawlFinalizer.RecordFinalCrawlStats(seed, 0, 1, 0, s.now().Sub(scanStartTime))
		return result.NewInvalidSeedResult(seed, s.now())
	}
	if keyword == "" {
		s.recordSeedError(seed, &SeedError{
			Message:   "keyword must not be empty",
			Retryable: false,
			Cause:     ErrCauseEmptyKeyword,
		})
	}

	seedUrl, err := url.Parse(canonicalSeed)
	if err != nil {
		// Canonicalize only returns parseable URLs.
		return result.NewInvalidSeedResult(seed, s.now())
	}
	state := newScanState(canonicalSeed, urlutil.DomainOf(*seedUrl))

	defer func() {
		s.crawlFinalizer.RecordFinalCrawlStats(
			state.seedURL,
			state.frontier.VisitedCount(),
			state.totalErrors,
			state.totalOccurrences(),
			s.now().Sub(scanStartTime),
		)
	}()

	state.frontier.Submit(frontier.NewCrawlAdmissionCandidate(*seedUrl))

	for ctx.Err() == nil {
		token, ok := state.frontier.Dequeue()
		if !ok {
			break
		}
		state.pages = append(state.pages, s.visit(ctx, state, token, keyword))
		s.metadataSink.RecordProgress(
			state.seedURL,
			state.frontier.VisitedCount(),
			state.frontier.QueuedCount(),
		)
	}

	return result.ScanResult{
		GeneratedAt:      s.now(),
		Domain:           state.domain,
		Success:          true,
		TotalVisitedURLs: len(state.pages),
		VisitedURLsData:  state.pages,
	}
}

// visit fetches one page, extracts occurrences and admits discovered links.
func (s *Scheduler) visit(
	ctx context.Context,
	state *scanState,
	token frontier.CrawlToken,
	keyword string,
) result.PageResult {
	pageUrl := token.URL()
	pageKey := pageUrl.String()

	fetchParam := fetcher.NewFetchParam(pageUrl, s.userAgent, s.timeout)
	fetchResult, err := s.htmlFetcher.Fetch(context.WithoutCancel(ctx), fetchParam)
	if err != nil {
		// recoverable → log already done → count error
		state.totalErrors++
		kind := fetcher.KindUnknown
		var fetchErr *fetcher.FetchError
		if errors.As(err, &fetchErr) {
			kind = fetchErr.Kind()
		}
		return result.NewFailedPageResult(pageKey, result.StatusKind(string(kind)))
	}

	if !fetchResult.IsSuccess() {
		return result.NewFailedPageResult(pageKey, result.StatusCode(fetchResult.Code()))
	}

	// Relative links resolve against where the page actually lives.
	baseUrl := fetchResult.URL()
	extraction := s.extractor.Extract(baseUrl, fetchResult.Body(), fetchResult.ContentType(), keyword)

	for _, href := range extraction.Hrefs {
		s.submitUrlForAdmission(state, href, baseUrl)
	}

	return result.NewPageResult(
		pageKey,
		result.StatusCode(fetchResult.Code()),
		extraction.Text,
		extraction.Mail,
		extraction.Link,
	)
}

// submitUrlForAdmission performs all semantic checks required for a URL
// to enter the crawl frontier.
//
// This function is the single admission choke point for the scan.
// It reports whether the href was enqueued.
func (s *Scheduler) submitUrlForAdmission(state *scanState, href string, baseUrl url.URL) bool {
	if !links.IsCrawlableKind(href, baseUrl) {
		return false
	}
	target, ok := links.ResolveSameDomainLink(href, baseUrl)
	if !ok || state.frontier.Contains(target) {
		return false
	}
	targetUrl, err := url.Parse(target)
	if err != nil {
		return false
	}
	// A redirect may have moved baseUrl off the seed's domain.
	if urlutil.DomainOf(*targetUrl) != state.domain {
		return false
	}
	return state.frontier.Submit(frontier.NewCrawlAdmissionCandidate(*targetUrl))
}

func (s *Scheduler) recordSeedError(seed string, err *SeedError) {
	s.metadataSink.RecordError(
		s.now(),
		"scheduler",
		"Scheduler.ExecuteScan",
		mapSeedErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrSeed, seed),
		},
	)
}
