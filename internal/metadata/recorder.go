package metadata

import (
	"log/slog"
	"time"
)

/*
Metadata Collected
- Fetch outcomes (status code or error kind) and durations
- Traversal progress per domain scan
- Report artifacts and their digests
- Final per-scan statistics

Metadata is write-only.
No component may read metadata to influence crawl decisions.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		sizeByte uint64,
	)

	RecordProgress(
		seedUrl string,
		visited int,
		remaining int,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type CrawlFinalizer interface {
	RecordFinalCrawlStats(
		seedUrl string,
		totalPages int,
		totalErrors int,
		totalOccurrences int,
		duration time.Duration,
	)
}

/*
Recorder writes crawl events to a structured slog logger.
One Recorder is created per domain scan; the workerId tags every line so
interleaved output from parallel scans stays attributable.
Events are emitted synchronously in the order the owning scan produces them.
No global ordering across scans is guaranteed.
*/
type Recorder struct {
	workerId string
	logger   *slog.Logger
}

func NewRecorder(workerId string, logger *slog.Logger) Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return Recorder{
		workerId: workerId,
		logger:   logger.With("worker", workerId),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	args := []any{
		"observed_at", observedAt,
		"package", packageName,
		"action", action,
		"cause", cause.String(),
		"error", errorString,
	}
	r.logger.Warn("pipeline error", append(args, toArgs(attrs)...)...)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	sizeByte uint64,
) {
	r.logger.Debug("fetched",
		"url", fetchUrl,
		"http_status", httpStatus,
		"duration", duration,
		"content_type", contentType,
		"size_bytes", sizeByte,
	)
}

func (r *Recorder) RecordProgress(seedUrl string, visited int, remaining int) {
	r.logger.Info("scan progress",
		"seed", seedUrl,
		"percent", progressPercent(visited, remaining),
		"visited", visited,
		"remaining", remaining,
	)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	args := []any{"kind", string(kind), "path", path}
	r.logger.Info("artifact written", append(args, toArgs(attrs)...)...)
}

/*
RecordFinalCrawlStats records a terminal, derived summary of a completed scan.

Contract:
  - MUST be called exactly once per domain scan, after the frontier is exhausted.
  - The provided stats MUST be derived from scheduler state.
*/
func (r *Recorder) RecordFinalCrawlStats(
	seedUrl string,
	totalPages int,
	totalErrors int,
	totalOccurrences int,
	duration time.Duration,
) {
	stats := crawlStats{
		seedURL:          seedUrl,
		totalPages:       totalPages,
		totalErrors:      totalErrors,
		totalOccurrences: totalOccurrences,
		durationMs:       duration.Milliseconds(),
	}
	r.logger.Info("scan finished",
		"seed", stats.seedURL,
		"pages", stats.totalPages,
		"errors", stats.totalErrors,
		"occurrences", stats.totalOccurrences,
		"duration_ms", stats.durationMs,
	)
}

// progressPercent is the share of known URLs already visited, truncated.
func progressPercent(visited int, remaining int) int {
	total := visited + remaining
	if total == 0 {
		return 100
	}
	return 100 * visited / total
}

func toArgs(attrs []Attribute) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, slog.String(string(attr.Key), attr.Value))
	}
	return args
}

// NoopSink, struct that implements MetadataSink and CrawlFinalizer but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	sizeByte uint64,
) {
}

func (n *NoopSink) RecordProgress(seedUrl string, visited int, remaining int) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordFinalCrawlStats(
	seedUrl string,
	totalPages int,
	totalErrors int,
	totalOccurrences int,
	duration time.Duration,
) {
}
