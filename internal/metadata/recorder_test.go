package metadata_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/stretchr/testify/assert"
)

func newBufferedRecorder(level slog.Level) (*metadata.Recorder, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
	recorder := metadata.NewRecorder("https://example.com/", logger)
	return &recorder, buf
}

func TestRecorder_RecordError(t *testing.T) {
	recorder, buf := newBufferedRecorder(slog.LevelInfo)

	recorder.RecordError(
		time.Now(),
		"fetcher",
		"HtmlFetcher.Fetch",
		metadata.CauseNetworkFailure,
		"fetcher error: timeout",
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, "https://example.com/slow"),
		},
	)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "cause=network_failure")
	assert.Contains(t, out, "url=https://example.com/slow")
	assert.Contains(t, out, "worker=https://example.com/")
}

func TestRecorder_RecordFetchIsDebug(t *testing.T) {
	recorder, buf := newBufferedRecorder(slog.LevelInfo)
	recorder.RecordFetch("https://example.com/", 200, time.Millisecond, "text/html", 512)
	assert.Empty(t, buf.String())

	recorder, buf = newBufferedRecorder(slog.LevelDebug)
	recorder.RecordFetch("https://example.com/", 200, time.Millisecond, "text/html", 512)
	assert.Contains(t, buf.String(), "http_status=200")
	assert.Contains(t, buf.String(), "size_bytes=512")
}

func TestRecorder_RecordProgress(t *testing.T) {
	tests := []struct {
		name      string
		visited   int
		remaining int
		want      string
	}{
		{name: "nothing visited", visited: 0, remaining: 4, want: "percent=0"},
		{name: "one third truncated", visited: 1, remaining: 2, want: "percent=33"},
		{name: "exhausted", visited: 3, remaining: 0, want: "percent=100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, buf := newBufferedRecorder(slog.LevelInfo)
			recorder.RecordProgress("https://example.com/", tt.visited, tt.remaining)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRecorder_RecordFinalCrawlStats(t *testing.T) {
	recorder, buf := newBufferedRecorder(slog.LevelInfo)
	recorder.RecordFinalCrawlStats("https://example.com/", 3, 1, 7, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "scan finished")
	assert.Contains(t, out, "pages=3")
	assert.Contains(t, out, "errors=1")
	assert.Contains(t, out, "occurrences=7")
	assert.Contains(t, out, "duration_ms=1500")
}

func TestErrorCauseString(t *testing.T) {
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
	assert.Equal(t, "storage_failure", metadata.CauseStorageFailure.String())
	assert.Equal(t, "unknown", metadata.ErrorCause(99).String())
}

func TestNoopSinkDiscardsEverything(t *testing.T) {
	var sink metadata.MetadataSink = &metadata.NoopSink{}
	var finalizer metadata.CrawlFinalizer = &metadata.NoopSink{}

	assert.NotPanics(t, func() {
		sink.RecordError(time.Now(), "pkg", "action", metadata.CauseUnknown, "details", nil)
		sink.RecordFetch("https://example.com/", 200, 0, "", 0)
		sink.RecordProgress("https://example.com/", 0, 0)
		sink.RecordArtifact(metadata.ArtifactReport, "out.json", nil)
		finalizer.RecordFinalCrawlStats("https://example.com/", 0, 0, 0, 0)
	})
}
